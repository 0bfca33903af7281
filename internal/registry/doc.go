// Package registry holds the static catalog of MCP tools.
//
// The registry is built once at startup and is read-only afterwards,
// so lookups need no locking. Each entry pairs the MCP tool definition
// (name, description, input schema) with the translation spec that
// turns a JSON argument object into a pcli2 command line.
package registry
