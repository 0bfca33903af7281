package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os/exec"

	"github.com/jchultarsky101/pcli2-mcp/internal/errors"
)

// DefaultProgram is the wrapped CLI binary name.
const DefaultProgram = "pcli2"

// Result is the outcome of one subprocess execution. Both output
// streams are captured in full; partial output from a failing command
// is preserved.
type Result struct {
	ExitSuccess bool
	ExitCode    int
	Stdout      string
	Stderr      string
}

// Executor runs the wrapped program. It holds no per-call state; a
// single Executor is safe for concurrent use.
type Executor struct {
	log     *slog.Logger
	program string
}

// New creates an executor for the given program. An empty program
// falls back to DefaultProgram.
func New(log *slog.Logger, program string) *Executor {
	if program == "" {
		program = DefaultProgram
	}

	return &Executor{
		log:     log.With("component", "executor"),
		program: program,
	}
}

// Program returns the program this executor runs.
func (e *Executor) Program() string {
	return e.program
}

// Run executes the program with the given argv and waits for it to
// complete. There is no timeout; callers impose a deadline through ctx
// if they need one.
//
// A non-zero exit (or death by signal) is not an error: it yields a
// Result with ExitSuccess false. The returned error is non-nil only
// when the process could not be spawned at all.
func (e *Executor) Run(ctx context.Context, argv []string) (Result, error) {
	cmd := exec.CommandContext(ctx, e.program, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debug("Spawning subprocess", "program", e.program, "argv", argv)

	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		res.ExitSuccess = true

		return res, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		// ExitCode is -1 when the process was killed by a signal.
		res.ExitCode = exitErr.ExitCode()
		e.log.Debug("Subprocess exited non-zero", "exit_code", res.ExitCode)

		return res, nil
	}

	e.log.Error("Failed to spawn subprocess", "program", e.program, "error", err)

	return res, &errors.SpawnError{Program: e.program, Err: err}
}
