package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ServerError is the base interface for all pcli2-mcp errors.
type ServerError interface {
	error
	IsPcli2MCPError() bool
}

// Compile-time verification that all error types implement ServerError.
var (
	_ ServerError = (*MissingRequiredError)(nil)
	_ ServerError = (*MissingOneOfError)(nil)
	_ ServerError = (*UnknownToolError)(nil)
	_ ServerError = (*ProgramNotFoundError)(nil)
	_ ServerError = (*SpawnError)(nil)
	_ ServerError = (*CommandError)(nil)
)

// MissingRequiredError indicates a required tool argument is absent
// or not a string.
type MissingRequiredError struct {
	Key string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("Missing required argument: '%s'", e.Key)
}

// IsPcli2MCPError implements ServerError.
func (e *MissingRequiredError) IsPcli2MCPError() bool { return true }

// MissingOneOfError indicates none of a set of mutually-acceptable
// tool arguments was provided.
type MissingOneOfError struct {
	Keys []string
}

func (e *MissingOneOfError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		quoted[i] = "'" + k + "'"
	}

	return fmt.Sprintf("Missing required argument: one of %s", strings.Join(quoted, " or "))
}

// IsPcli2MCPError implements ServerError.
func (e *MissingOneOfError) IsPcli2MCPError() bool { return true }

// UnknownToolError indicates a tools/call named a tool that is not
// in the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool '%s'", e.Name)
}

// IsPcli2MCPError implements ServerError.
func (e *UnknownToolError) IsPcli2MCPError() bool { return true }

// ProgramNotFoundError indicates the pcli2 binary was not found.
type ProgramNotFoundError struct {
	SearchedPaths []string
}

func (e *ProgramNotFoundError) Error() string {
	return fmt.Sprintf("pcli2 binary not found in: %v", e.SearchedPaths)
}

// IsPcli2MCPError implements ServerError.
func (e *ProgramNotFoundError) IsPcli2MCPError() bool { return true }

// SpawnError indicates the wrapped program could not be started
// (not found, permission denied).
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsPcli2MCPError implements ServerError.
func (e *SpawnError) IsPcli2MCPError() bool { return true }

// CommandError indicates the wrapped program ran but exited with a
// non-zero status. Both captured output streams are preserved so the
// caller can diagnose the underlying tool's complaint.
type CommandError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed (exit %d)\nstdout:\n%s\nstderr:\n%s",
		e.Command, e.ExitCode, e.Stdout, e.Stderr)
}

// IsPcli2MCPError implements ServerError.
func (e *CommandError) IsPcli2MCPError() bool { return true }

// IsValidation reports whether err is an argument-validation failure
// (as opposed to an execution failure).
func IsValidation(err error) bool {
	var missing *MissingRequiredError
	var oneOf *MissingOneOfError

	return stderrors.As(err, &missing) || stderrors.As(err, &oneOf)
}
