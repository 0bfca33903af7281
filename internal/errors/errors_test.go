package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingRequiredError(t *testing.T) {
	err := &MissingRequiredError{Key: "name"}

	assert.Equal(t, "Missing required argument: 'name'", err.Error())
	assert.True(t, err.IsPcli2MCPError())
}

func TestMissingOneOfError(t *testing.T) {
	err := &MissingOneOfError{Keys: []string{"uuid", "path"}}

	assert.Equal(t, "Missing required argument: one of 'uuid' or 'path'", err.Error())
	assert.True(t, err.IsPcli2MCPError())
}

func TestUnknownToolError(t *testing.T) {
	err := &UnknownToolError{Name: "pcli2_bogus"}

	assert.Equal(t, "Unknown tool 'pcli2_bogus'", err.Error())
}

func TestSpawnError(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := &SpawnError{Program: "pcli2", Err: cause}

	assert.Contains(t, err.Error(), "pcli2")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
}

func TestCommandError(t *testing.T) {
	err := &CommandError{
		Command:  "pcli2 tenant list",
		ExitCode: 2,
		Stdout:   "partial output",
		Stderr:   "no active tenant",
	}

	msg := err.Error()
	assert.Contains(t, msg, "pcli2 tenant list")
	assert.Contains(t, msg, "exit 2")
	assert.Contains(t, msg, "partial output")
	assert.Contains(t, msg, "no active tenant")
}

func TestIsValidation(t *testing.T) {
	t.Run("validation errors", func(t *testing.T) {
		assert.True(t, IsValidation(&MissingRequiredError{Key: "name"}))
		assert.True(t, IsValidation(&MissingOneOfError{Keys: []string{"uuid", "path"}}))
	})

	t.Run("wrapped validation error", func(t *testing.T) {
		wrapped := fmt.Errorf("translate: %w", &MissingRequiredError{Key: "name"})
		assert.True(t, IsValidation(wrapped))
	})

	t.Run("execution errors are not validation", func(t *testing.T) {
		assert.False(t, IsValidation(&SpawnError{Program: "pcli2"}))
		assert.False(t, IsValidation(&CommandError{Command: "pcli2"}))
		assert.False(t, IsValidation(stderrors.New("other")))
	})
}

func TestErrorsAs(t *testing.T) {
	var target *MissingRequiredError

	err := fmt.Errorf("call failed: %w", &MissingRequiredError{Key: "file"})
	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, "file", target.Key)
}
