package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five-field cron format.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate performs business-rule validation on the loaded configuration.
// Every invalid field is reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn must be set"))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be >= 1 (got %d)", c.Database.MaxOpenConns))
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns must be within [0, %d] (got %d)",
			c.Database.MaxOpenConns, c.Database.MaxIdleConns))
	}

	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout must be > 0 (got %v)", c.Server.RequestTimeout))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must be > 0 (got %v)", c.RateLimit.RequestsPerSecond))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be >= 1 (got %d)", c.RateLimit.Burst))
		}
	}

	if c.Pagination.DefaultLimit < 1 || c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		errs = append(errs, fmt.Errorf("pagination.default_limit must be within [1, %d] (got %d)",
			c.Pagination.MaxLimit, c.Pagination.DefaultLimit))
	}

	if err := c.Worker.validate(); err != nil {
		errs = append(errs, fmt.Errorf("worker: %w", err))
	}

	return errors.Join(errs...)
}

func (w WorkerConfig) validate() error {
	if _, err := cronParser.Parse(w.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", w.CronSchedule, err)
	}
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", w.Timezone, err)
	}
	if w.JobTimeout <= 0 {
		return fmt.Errorf("job_timeout must be > 0 (got %v)", w.JobTimeout)
	}
	return nil
}

// Location returns the time zone the cron schedule is evaluated in.
// Validate has already checked that it loads.
func (w WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
