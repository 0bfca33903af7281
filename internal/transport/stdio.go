package transport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/jchultarsky101/pcli2-mcp/internal/rpc"
)

// maxScanTokenSize is the maximum accepted length of one input line.
const maxScanTokenSize = 1024 * 1024 // 1MB

// Stdio serves newline-delimited JSON-RPC over a reader/writer pair,
// normally the process stdin and stdout.
type Stdio struct {
	log        *slog.Logger
	dispatcher *rpc.Dispatcher
	in         io.Reader
	out        io.Writer
}

// NewStdio creates a stdio transport around the dispatcher.
func NewStdio(log *slog.Logger, dispatcher *rpc.Dispatcher, in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		log:        log.With("component", "stdio"),
		dispatcher: dispatcher,
		in:         in,
		out:        out,
	}
}

// Serve reads messages until EOF, a shutdown notification, or a write
// failure. Blank lines are skipped; lines that are not JSON are logged
// and dropped without a response, since there is no id to echo.
// Each response is written as a single line and flushed immediately.
func (s *Stdio) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)

	writer := bufio.NewWriter(s.out)

	s.log.Info("MCP server listening on stdio")

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if !json.Valid(line) {
			s.log.Warn("Ignoring non-JSON input line", "line", string(line))

			continue
		}

		resp, shutdown := s.dispatcher.Handle(ctx, line)

		if resp != nil {
			if err := writeLine(writer, resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}

		if shutdown {
			s.log.Info("Stopping stdio transport")

			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

func writeLine(w *bufio.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}

	if err := w.WriteByte('\n'); err != nil {
		return err
	}

	return w.Flush()
}
