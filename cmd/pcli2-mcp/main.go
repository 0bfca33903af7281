package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "0.2.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "pcli2-mcp",
	Short:        "MCP server for the Physna pcli2 CLI",
	Long:         "pcli2-mcp — exposes pcli2 commands as Model Context Protocol tools for LLM agents.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a pcli2-mcp.yaml config file")
	rootCmd.PersistentFlags().String("pcli2", "", "Path to the pcli2 binary (default: discovered)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pcli2-mcp version %s\n", version))

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newClientConfigCmd())
}
