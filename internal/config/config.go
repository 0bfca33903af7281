package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	projectConfigName = "pcli2-mcp.yaml"
	homeConfigDir     = ".pcli2-mcp"
	homeConfigName    = "config.yaml"
)

// Config is the server's startup configuration. Command-line flags
// override values loaded from file.
type Config struct {
	// Program is the pcli2 binary to invoke; a bare name or a path.
	Program string `yaml:"program,omitempty"`

	HTTP  HTTPConfig  `yaml:"http,omitempty"`
	Log   LogConfig   `yaml:"log,omitempty"`
	Tools ToolsConfig `yaml:"tools,omitempty"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ToolsConfig selects the advertised tool catalog.
type ToolsConfig struct {
	// Generic additionally exposes the free-form "pcli2" tool.
	Generic bool `yaml:"generic,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads and parses a YAML config file, applied on top of the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}

// Discover resolves the config file location with first-match
// semantics: the explicit path if given, then ./pcli2-mcp.yaml, then
// ~/.pcli2-mcp/config.yaml. The boolean reports whether a file was
// found; no file is not an error unless an explicit path was set.
func Discover(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}

	return DiscoverFrom(explicitPath, cwd, homeDir)
}

// DiscoverFrom is a testable variant of Discover.
func DiscoverFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	explicit := strings.TrimSpace(explicitPath)

	candidates := make([]string, 0, 2)
	if explicit != "" {
		candidates = append(candidates, filepath.Clean(explicit))
	} else {
		candidates = append(candidates,
			filepath.Join(cwd, projectConfigName),
			filepath.Join(homeDir, homeConfigDir, homeConfigName),
		)
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}

		if errors.Is(err, os.ErrNotExist) {
			if i == 0 && explicit != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}

			continue
		}

		if err != nil {
			return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
		}
	}

	return "", false, nil
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
