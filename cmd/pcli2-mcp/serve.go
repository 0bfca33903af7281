package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jchultarsky101/pcli2-mcp/internal/config"
	"github.com/jchultarsky101/pcli2-mcp/internal/executor"
	"github.com/jchultarsky101/pcli2-mcp/internal/registry"
	"github.com/jchultarsky101/pcli2-mcp/internal/rpc"
	"github.com/jchultarsky101/pcli2-mcp/internal/transport"
)

const serverName = "pcli2-mcp"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio",
		RunE:  runServeStdio,
	}

	cmd.PersistentFlags().Bool("generic-tool", false, "Additionally expose the free-form pcli2 tool")
	cmd.Flags().Bool("no-banner", false, "Suppress the startup banner")

	cmd.AddCommand(newServeHTTPCmd())

	return cmd
}

func newServeHTTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve MCP over HTTP (POST /mcp, GET /health)",
		RunE:  runServeHTTP,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, :8080)")

	return cmd
}

// setup resolves configuration and builds the logger. Flags override
// file values. Logs go to stderr: stdout belongs to the stdio
// transport.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	explicit, _ := cmd.Flags().GetString("config")

	cfg := config.Default()

	path, found, err := config.Discover(explicit)
	if err != nil {
		return config.Config{}, nil, err
	}

	if found {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, nil, err
		}
	}

	if program, _ := cmd.Flags().GetString("pcli2"); program != "" {
		cfg.Program = program
	}

	if generic, _ := cmd.Flags().GetBool("generic-tool"); generic {
		cfg.Tools.Generic = true
	}

	level := cfg.LogLevel()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if found {
		log.Debug("Loaded configuration", "path", path)
	}

	return cfg, log, nil
}

// buildDispatcher wires registry, executor and dispatcher from the
// resolved configuration.
func buildDispatcher(cfg config.Config, log *slog.Logger, opts ...rpc.Option) *rpc.Dispatcher {
	var regOpts []registry.Option
	if cfg.Tools.Generic {
		regOpts = append(regOpts, registry.WithGenericTool())
	}

	reg := registry.New(regOpts...)

	program, err := executor.Discover(log, cfg.Program)
	if err != nil {
		// Keep serving: the spawn failure surfaces per tool call with
		// a diagnosable message.
		log.Warn("pcli2 binary not found at startup", "error", err)

		program = cfg.Program
	}

	exe := executor.New(log, program)
	log.Info("Tool registry ready", "tools", reg.Len(), "program", exe.Program())

	return rpc.New(log, reg, exe, serverName, version, opts...)
}

func runServeStdio(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		printBanner(os.Stderr)
	}

	d := buildDispatcher(cfg, log, rpc.WithMethodToolRouting())

	s := transport.NewStdio(log, d, os.Stdin, os.Stdout)
	if err := s.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("stdio transport: %w", err)
	}

	log.Info("pcli2 MCP server stopped")

	return nil
}

func runServeHTTP(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	d := buildDispatcher(cfg, log)

	s := transport.NewHTTP(log, d, cfg.HTTP.Addr)
	if err := s.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("http transport: %w", err)
	}

	log.Info("pcli2 MCP server stopped")

	return nil
}
