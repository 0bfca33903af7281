// Package config loads the server's YAML configuration and generates
// the JSON snippets that tell MCP client applications how to reach
// this server.
package config
