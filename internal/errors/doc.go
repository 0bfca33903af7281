// Package errors defines error types for the pcli2 MCP server.
//
// This package provides structured error types covering the failure
// taxonomy of a tool call: argument validation, unknown tools, and
// subprocess execution. All error types support error unwrapping and
// can be checked using errors.Is and errors.As.
package errors
