package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/observability/metrics"
)

func testConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Timeout:          50 * time.Millisecond,
		MinRequests:      2,
		FailureThreshold: 1.0,
		IsSuccessful:     isHealthyDBResult,
	}
}

func newMockBreaker(t *testing.T, cfg Config) (*TxBreaker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTxBreaker(db, cfg), mock
}

func TestTxBreaker_BeginTx(t *testing.T) {
	b, mock := newMockBreaker(t, testConfig("begin"))
	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := b.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxBreaker_OpensAfterFailures(t *testing.T) {
	b, mock := newMockBreaker(t, testConfig("trip"))
	down := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	mock.ExpectBegin().WillReturnError(down)
	mock.ExpectBegin().WillReturnError(down)

	for i := 0; i < 2; i++ {
		_, err := b.BeginTx(context.Background(), nil)
		require.ErrorIs(t, err, down)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("trip")))

	// 開いている間はプールに触れない
	_, err := b.BeginTx(context.Background(), nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxBreaker_HalfOpenProbeCloses(t *testing.T) {
	b, mock := newMockBreaker(t, testConfig("probe"))
	down := errors.New("connection reset by peer")
	mock.ExpectBegin().WillReturnError(down)
	mock.ExpectBegin().WillReturnError(down)
	mock.ExpectBegin()

	for i := 0; i < 2; i++ {
		_, _ = b.BeginTx(context.Background(), nil)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, b.State())

	_, err := b.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, float64(gobreaker.StateClosed), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("probe")))
}

func TestTxBreaker_CancellationDoesNotTrip(t *testing.T) {
	b, mock := newMockBreaker(t, testConfig("cancel"))
	mock.ExpectBegin().WillReturnError(context.Canceled)
	mock.ExpectBegin().WillReturnError(context.Canceled)
	mock.ExpectBegin().WillReturnError(context.Canceled)

	for i := 0; i < 3; i++ {
		_, err := b.BeginTx(context.Background(), nil)
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestDBConfig(t *testing.T) {
	cfg := DBConfig()

	assert.Equal(t, "database", cfg.Name)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.Equal(t, 1.0, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.IsSuccessful)
}

func TestIsHealthyDBResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: true},
		{name: "no rows", err: sql.ErrNoRows, want: true},
		{name: "canceled", err: context.Canceled, want: true},
		{name: "invalid text", err: &pgconn.PgError{Code: "22P02"}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: false},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "plain error", err: errors.New("broken pipe"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHealthyDBResult(tt.err))
		})
	}
}
