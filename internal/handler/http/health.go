// Package http provides the shared HTTP plumbing of the API server:
// health probes, metrics, request logging, panic recovery, body limits,
// per-IP rate limiting and request timeouts. Resource handlers live in
// the article, category and comment subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"content-api/internal/handler/http/respond"
)

// Health states, worst last.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// poolSaturation is the share of busy connections above which the pool is degraded.
const poolSaturation = 0.8

// Pool is the part of *sql.DB the probes use.
type Pool interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// BreakerState is the part of the circuit breaker the health check reads.
type BreakerState interface {
	State() gobreaker.State
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
}

// Check is the result of one dependency probe.
type Check struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports the database and, when set, the transaction breaker.
// Only an unhealthy check turns the response into a 503; degraded is
// reported with 200 since requests are still being served.
type HealthHandler struct {
	DB      Pool
	Version string
	Breaker BreakerState
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    StatusHealthy,
		Version:   h.Version,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Checks:    map[string]Check{"database": checkPool(ctx, h.DB)},
	}
	if h.Breaker != nil {
		resp.Checks["circuit_breaker"] = checkBreaker(h.Breaker)
	}
	for _, c := range resp.Checks {
		resp.Status = worse(resp.Status, c.Status)
	}

	code := http.StatusOK
	if resp.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, code, resp)
}

// ReadyHandler answers the readiness probe: ready once the database answers a ping.
type ReadyHandler struct {
	DB Pool
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database not configured"})
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  respond.SanitizeError(err),
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// LiveHandler answers the liveness probe. It touches no dependency.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

/* ───── ヘルパ ───── */

func checkPool(ctx context.Context, db Pool) Check {
	if db == nil {
		return Check{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := db.PingContext(ctx); err != nil {
		return Check{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
	}

	s := db.Stats()
	c := Check{
		Status: StatusHealthy,
		Details: map[string]any{
			"max_open_connections": s.MaxOpenConnections,
			"open_connections":     s.OpenConnections,
			"in_use":               s.InUse,
			"idle":                 s.Idle,
			"wait_count":           s.WaitCount,
			"wait_duration_ms":     s.WaitDuration.Milliseconds(),
		},
	}
	// 上限なしのプールは飽和を判定できない
	if s.MaxOpenConnections <= 0 {
		c.Status = StatusDegraded
		c.Message = "connection pool has no upper bound"
		return c
	}
	used := float64(s.InUse) / float64(s.MaxOpenConnections)
	c.Details["utilization_percent"] = used * 100
	if used >= poolSaturation {
		c.Status = StatusDegraded
		c.Message = "connection pool nearly exhausted"
	}
	return c
}

// checkBreaker treats a non-closed breaker as degraded: transactions fail
// fast but reads keep working.
func checkBreaker(b BreakerState) Check {
	state := b.State()
	c := Check{Status: StatusHealthy, Details: map[string]any{"state": state.String()}}
	if state != gobreaker.StateClosed {
		c.Status = StatusDegraded
	}
	return c
}

func worse(a, b string) string {
	rank := map[string]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
