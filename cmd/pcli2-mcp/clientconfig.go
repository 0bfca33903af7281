package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jchultarsky101/pcli2-mcp/internal/config"
)

func newClientConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client-config",
		Short: "Print the MCP client configuration snippet for this server",
		Long: "Prints the JSON block that MCP client applications (Claude Desktop, " +
			"Cursor, etc.) need in their configuration to reach this server.",
		RunE: runClientConfig,
	}

	cmd.Flags().String("transport", "stdio", "Transport to configure: stdio or http")
	cmd.Flags().String("url", "http://localhost:8080/mcp", "Server URL for the http transport")

	return cmd
}

func runClientConfig(cmd *cobra.Command, _ []string) error {
	transportName, _ := cmd.Flags().GetString("transport")

	var snippet config.ClientSnippet

	switch transportName {
	case "stdio":
		binary, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolving own binary path: %w", err)
		}

		snippet = config.StdioClientSnippet(binary)
	case "http":
		url, _ := cmd.Flags().GetString("url")
		snippet = config.HTTPClientSnippet(url)
	default:
		return fmt.Errorf("unknown transport %q: want stdio or http", transportName)
	}

	rendered, err := snippet.Render()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	return nil
}
