// Package executor runs the wrapped pcli2 binary.
//
// It spawns one subprocess per tool call, buffers the full stdout and
// stderr in memory, and classifies the outcome by exit status without
// interpreting the program's output. It also locates the pcli2 binary
// at startup, searching an explicit path, then PATH, then common
// installation directories.
package executor
