package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content-api/internal/handler/http/respond"
)

const shutdownGrace = 5 * time.Second

// RefreshObserver is told about every finished refresh.
type RefreshObserver interface {
	ObserveRefresh(st Stats, err error, at time.Time)
}

// RefreshReport is the last refresh as shown on /health/ready.
type RefreshReport struct {
	At         time.Time `json:"at"`
	OK         bool      `json:"ok"`
	Articles   int64     `json:"articles"`
	Categories int64     `json:"categories"`
	Comments   int64     `json:"comments"`
	Error      string    `json:"error,omitempty"`
}

type probeBody struct {
	Status      string         `json:"status"`
	LastRefresh *RefreshReport `json:"lastRefresh,omitempty"`
}

// HealthServer exposes the worker probes next to /metrics.
// Readiness follows the scheduler; a failed refresh is reported but does not
// make the worker unready, since the next tick may succeed.
type HealthServer struct {
	addr   string
	logger *slog.Logger
	ready  atomic.Bool
	last   atomic.Pointer[RefreshReport]
}

// NewHealthServer returns a server for addr that starts out not ready.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{addr: addr, logger: logger}
}

// Handler returns the probe and metrics routes.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, probeBody{Status: "ok"})
	})
	mux.HandleFunc("GET /health/ready", h.readiness)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is done. After a clean shutdown it returns
// http.ErrServerClosed.
func (h *HealthServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		h.logger.Info("health server listening", slog.String("addr", h.addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		h.logger.Error("health server shutdown failed", slog.Any("error", err))
		return err
	}
	return http.ErrServerClosed
}

// SetReady flips the readiness probe. Repeated calls with the same value are silent.
func (h *HealthServer) SetReady(ready bool) {
	if h.ready.Swap(ready) != ready {
		h.logger.Info("worker readiness changed", slog.Bool("ready", ready))
	}
}

// ObserveRefresh records the outcome of a refresh for the readiness body.
func (h *HealthServer) ObserveRefresh(st Stats, err error, at time.Time) {
	r := &RefreshReport{At: at.UTC(), OK: err == nil}
	if err != nil {
		r.Error = respond.SanitizeError(err)
	} else {
		r.Articles, r.Categories, r.Comments = st.Articles, st.Categories, st.Comments
	}
	h.last.Store(r)
}

// LastRefresh returns the most recent refresh, or nil before the first one.
func (h *HealthServer) LastRefresh() *RefreshReport {
	return h.last.Load()
}

func (h *HealthServer) readiness(w http.ResponseWriter, _ *http.Request) {
	body := probeBody{Status: "ok", LastRefresh: h.last.Load()}
	code := http.StatusOK
	if !h.ready.Load() {
		body.Status, code = "not ready", http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, code, body)
}
