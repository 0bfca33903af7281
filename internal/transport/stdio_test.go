package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchultarsky101/pcli2-mcp/internal/executor"
	"github.com/jchultarsky101/pcli2-mcp/internal/registry"
	"github.com/jchultarsky101/pcli2-mcp/internal/rpc"
)

type stubRunner struct {
	result executor.Result
}

func (s *stubRunner) Program() string { return "pcli2" }

func (s *stubRunner) Run(_ context.Context, _ []string) (executor.Result, error) {
	return s.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStdio(in string, out *bytes.Buffer) *Stdio {
	d := rpc.New(testLogger(), registry.New(),
		&stubRunner{result: executor.Result{ExitSuccess: true, Stdout: "ok"}},
		"pcli2-mcp", "0.2.0", rpc.WithMethodToolRouting())

	return NewStdio(testLogger(), d, strings.NewReader(in), out)
}

// responseLines splits the output into one decoded envelope per line.
func responseLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()

	var envs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}

		var env map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &env))
		envs = append(envs, env)
	}

	return envs
}

func TestStdioServe(t *testing.T) {
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		``,
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	s := newStdio(in, &out)

	require.NoError(t, s.Serve(context.Background()))

	envs := responseLines(t, &out)
	// Two requests, one notification, one blank line: exactly two
	// responses, in request order.
	require.Len(t, envs, 2)
	assert.Equal(t, float64(1), envs[0]["id"])
	assert.Equal(t, float64(2), envs[1]["id"])
}

func TestStdioIgnoresNonJSONLines(t *testing.T) {
	in := "this is not json\n" +
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}` + "\n"

	var out bytes.Buffer
	s := newStdio(in, &out)

	require.NoError(t, s.Serve(context.Background()))

	envs := responseLines(t, &out)
	require.Len(t, envs, 1)
	assert.Equal(t, float64(3), envs[0]["id"])
}

func TestStdioShutdownNotificationStopsLoop(t *testing.T) {
	in := `{"jsonrpc":"2.0","method":"shutdown"}` + "\n" +
		`{"jsonrpc":"2.0","id":4,"method":"tools/list"}` + "\n"

	var out bytes.Buffer
	s := newStdio(in, &out)

	require.NoError(t, s.Serve(context.Background()))

	// The request after shutdown is never processed.
	assert.Empty(t, responseLines(t, &out))
}

func TestStdioMethodToolRouting(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":5,"method":"tools/pcli2_tenant_list/call","params":{"arguments":{}}}` + "\n"

	var out bytes.Buffer
	s := newStdio(in, &out)

	require.NoError(t, s.Serve(context.Background()))

	envs := responseLines(t, &out)
	require.Len(t, envs, 1)

	result := envs[0]["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "ok", content[0].(map[string]any)["text"])
}
