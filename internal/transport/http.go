package transport

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jchultarsky101/pcli2-mcp/internal/rpc"
)

const (
	// maxRequestBody caps the accepted size of one JSON-RPC envelope.
	maxRequestBody = 1 << 20 // 1MB

	shutdownGrace = 5 * time.Second
)

// HTTP serves JSON-RPC over POST /mcp, plus GET /health.
type HTTP struct {
	log        *slog.Logger
	dispatcher *rpc.Dispatcher
	addr       string

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewHTTP creates an HTTP transport listening on addr.
func NewHTTP(log *slog.Logger, dispatcher *rpc.Dispatcher, addr string) *HTTP {
	return &HTTP{
		log:        log.With("component", "http"),
		dispatcher: dispatcher,
		addr:       addr,
		shutdownCh: make(chan struct{}),
	}
}

// Handler returns the route table. Exposed separately from Serve so
// tests can drive it with httptest.
func (h *HTTP) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /mcp", h.handleMCP)

	return mux
}

// Serve runs the HTTP server until ctx is cancelled or a shutdown
// notification arrives, then drains in-flight requests.
func (h *HTTP) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h.log.Info("MCP server listening on HTTP", "addr", h.addr)

		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
		case <-h.shutdownCh:
			h.log.Info("Stopping HTTP transport")
		}

		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		return srv.Shutdown(drainCtx)
	})

	return g.Wait()
}

func (h *HTTP) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *HTTP) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		h.log.Warn("Failed to read request body", "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)

		return
	}

	// Parse errors still produce a well-formed envelope with HTTP 200;
	// only transport-level failures use HTTP status codes.
	resp, shutdown := h.dispatcher.Handle(r.Context(), body)

	if shutdown {
		h.shutdownOnce.Do(func() { close(h.shutdownCh) })
	}

	if resp == nil {
		// Notification: no payload to return.
		w.WriteHeader(http.StatusNoContent)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		h.log.Warn("Failed to write response", "error", err)
	}
}
