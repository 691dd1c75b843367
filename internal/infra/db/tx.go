package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"content-api/internal/resilience/circuitbreaker"
	"content-api/internal/resilience/retry"
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx returns a copy of ctx carrying tx.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, if any.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Conn returns the transaction in ctx, or fallback when there is none.
func Conn(ctx context.Context, fallback Querier) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// Transactor runs units of work in a database transaction.
// BeginTx goes through the database circuit breaker, and a transaction that
// loses a serialization or deadlock race is re-run from the start.
type Transactor struct {
	breaker *circuitbreaker.TxBreaker
	retry   retry.Config
}

// NewTransactor creates a Transactor with the default breaker and retry settings.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{
		breaker: circuitbreaker.NewTxBreaker(db, circuitbreaker.DBConfig()),
		retry:   retry.TxConfig(),
	}
}

// NewTransactorWithConfig creates a Transactor with explicit breaker and retry settings.
func NewTransactorWithConfig(db *sql.DB, cb circuitbreaker.Config, rc retry.Config) *Transactor {
	return &Transactor{
		breaker: circuitbreaker.NewTxBreaker(db, cb),
		retry:   rc,
	}
}

// State reports the state of the circuit breaker guarding BeginTx.
func (t *Transactor) State() gobreaker.State {
	return t.breaker.State()
}

// WithinTx runs fn inside a transaction. If ctx already carries one, fn joins it.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}
	return retry.Do(ctx, t.retry, retry.IsSerializationFailure, func() error {
		return t.run(ctx, fn)
	})
}

func (t *Transactor) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.breaker.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				slog.Warn("transaction rollback failed",
					slog.Any("error", rbErr),
					slog.Any("cause", err))
			}
		}
	}()

	if err = fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
