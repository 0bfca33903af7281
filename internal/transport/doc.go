// Package transport frames JSON-RPC messages over stdio and HTTP.
//
// The stdio adapter speaks newline-delimited JSON on the process
// streams and is strictly serialized: one message is fully processed,
// subprocess and all, before the next is read. The HTTP adapter
// exposes POST /mcp and GET /health and allows full concurrency
// across connections, since each request builds an independent
// subprocess and response.
package transport
