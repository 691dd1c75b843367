// Package retry re-runs database work that lost a serialization or deadlock
// race, with exponential backoff and jitter between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Config describes a backoff schedule.
type Config struct {
	// MaxAttempts counts the first try. Values below 1 mean one try.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// JitterFraction adds up to this share of each delay at random (0 to 1).
	JitterFraction float64
}

// TxConfig is the schedule for re-running a whole transaction: three tries,
// 20ms then 40ms apart, never more than 200ms.
func TxConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   20 * time.Millisecond,
		MaxDelay:       200 * time.Millisecond,
		Multiplier:     2,
		JitterFraction: 0.2,
	}
}

// Do calls fn until it succeeds, returns an error retryable rejects, the
// attempts run out, or ctx is done. A rejected error is returned as is;
// exhaustion and cancellation wrap the last error.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, fn func() error) error {
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Debug("retry succeeded", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
		}

		wait := cfg.delay(attempt)
		slog.Warn("retrying after transient failure",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", errors.Join(ctx.Err(), err))
		}
	}
}

// IsSerializationFailure reports whether err is a PostgreSQL
// serialization_failure (40001) or deadlock_detected (40P01).
// Only these are safe to answer by re-running the whole transaction.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// delay is the wait after the given failed attempt (1-based).
func (c Config) delay(attempt int) time.Duration {
	d := float64(c.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= c.Multiplier
	}
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		d = float64(c.MaxDelay)
	}
	if f := min(c.JitterFraction, 1); f > 0 {
		d += rand.Float64() * d * f // #nosec G404 -- backoff jitter needs no crypto randomness
	}
	return time.Duration(d)
}
