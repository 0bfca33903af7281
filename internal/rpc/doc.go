// Package rpc implements the JSON-RPC 2.0 dispatcher for the MCP
// surface of the server.
//
// The dispatcher owns the request lifecycle: decode the wire message,
// distinguish request from notification, route by method name to
// initialize, tools/list or tools/call, and encode exactly one
// response envelope per non-notification message. Transports feed it
// one raw message at a time and write back whatever it returns.
//
// The protocol follows the MCP specification (revision 2025-03-26).
package rpc
