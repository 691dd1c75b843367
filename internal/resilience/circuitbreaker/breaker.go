// Package circuitbreaker stops the service from hammering an unavailable
// database. It wraps github.com/sony/gobreaker around the start of every
// transaction; once tripped, BeginTx fails fast with gobreaker.ErrOpenState.
package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"

	"content-api/internal/observability/metrics"
)

// Config tunes a breaker.
type Config struct {
	Name string
	// MaxRequests is how many probes a half-open breaker lets through.
	MaxRequests uint32
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// The breaker trips once MinRequests calls were seen in the current
	// interval and at least FailureThreshold of them failed.
	MinRequests      uint32
	FailureThreshold float64
	// IsSuccessful decides whether an error counts against the breaker.
	// Nil counts every non-nil error.
	IsSuccessful func(err error) bool
}

// DBConfig trips after five straight failures to open a transaction and
// probes again after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 1.0,
		IsSuccessful:     isHealthyDBResult,
	}
}

// TxBreaker guards BeginTx on a connection pool.
type TxBreaker struct {
	cb *gobreaker.CircuitBreaker
	db *sql.DB
}

// NewTxBreaker returns a closed breaker around db. State changes are logged
// and published as the circuit_breaker_state gauge.
func NewTxBreaker(db *sql.DB, cfg Config) *TxBreaker {
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return &TxBreaker{cb: cb, db: db}
}

// BeginTx starts a transaction unless the breaker is open.
func (b *TxBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.db.BeginTx(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Tx), nil
}

// State reports the breaker state.
func (b *TxBreaker) State() gobreaker.State { return b.cb.State() }

// isHealthyDBResult treats answers the database gave on purpose as successes.
// Missing rows, data and constraint errors, rollbacks and caller cancellation
// say nothing about the health of the server.
func isHealthyDBResult(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 22: data exception, 23: integrity constraint violation, 40: transaction rollback
	for _, class := range []string{"22", "23", "40"} {
		if strings.HasPrefix(pgErr.Code, class) {
			return true
		}
	}
	return false
}
