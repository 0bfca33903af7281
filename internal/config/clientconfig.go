package config

import (
	"encoding/json"
	"fmt"
)

// ClientServer is one server entry in an MCP client configuration.
// Stdio servers set Command/Args; HTTP servers set URL.
type ClientServer struct {
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
	URL     string   `json:"url,omitempty"`
}

// ClientSnippet is the JSON block third-party MCP client applications
// (Claude Desktop, Cursor, etc.) paste into their configuration to
// reach this server.
type ClientSnippet struct {
	MCPServers map[string]ClientServer `json:"mcpServers"`
}

// serverKey is the name clients register this server under.
const serverKey = "pcli2"

// StdioClientSnippet describes launching this server over stdio.
func StdioClientSnippet(binaryPath string) ClientSnippet {
	return ClientSnippet{
		MCPServers: map[string]ClientServer{
			serverKey: {
				Command: binaryPath,
				Args:    []string{"serve"},
			},
		},
	}
}

// HTTPClientSnippet describes reaching an already-running HTTP server.
func HTTPClientSnippet(url string) ClientSnippet {
	return ClientSnippet{
		MCPServers: map[string]ClientServer{
			serverKey: {URL: url},
		},
	}
}

// Render returns the snippet as indented JSON.
func (s ClientSnippet) Render() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding client config: %w", err)
	}

	return string(data), nil
}
