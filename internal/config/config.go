// Package config loads the process configuration for cmd/api and cmd/worker.
// Values come from an optional YAML file, then environment variables, then
// the env-default tags below.
package config

import (
	"time"

	"content-api/internal/common/pagination"
)

// Config is the root application configuration.
type Config struct {
	Version    string           `yaml:"version" env:"VERSION" env-default:"dev"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Pagination PaginationConfig `yaml:"pagination"`
	Worker     WorkerConfig     `yaml:"worker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"                env:"SERVER_ADDR"                env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" env-default:"10s"`
	RequestTimeout    time.Duration `yaml:"request_timeout"     env:"SERVER_REQUEST_TIMEOUT"     env-default:"30s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT"    env-default:"10s"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"      env:"SERVER_MAX_BODY_BYTES"      env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns"     env:"DATABASE_MAX_OPEN_CONNS"     env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"     env:"DATABASE_MAX_IDLE_CONNS"     env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"  env:"DATABASE_CONN_MAX_LIFETIME"  env-default:"1h"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds the per-client token bucket settings.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"  env-default:"true"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"      env-default:"10"`
	Burst             int     `yaml:"burst"               env:"RATE_LIMIT_BURST"    env-default:"20"`
}

// PaginationConfig bounds list endpoints. Requests over MaxLimit are rejected.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"PAGINATION_DEFAULT_LIMIT" env-default:"10"`
	MaxLimit     int `yaml:"max_limit"     env:"PAGINATION_MAX_LIMIT"     env-default:"100"`
}

// WorkerConfig holds settings for the statistics worker.
type WorkerConfig struct {
	// CronSchedule uses the five-field format, e.g. "*/5 * * * *".
	CronSchedule string        `yaml:"cron_schedule" env:"WORKER_CRON_SCHEDULE" env-default:"*/5 * * * *"`
	Timezone     string        `yaml:"timezone"      env:"WORKER_TIMEZONE"      env-default:"UTC"`
	JobTimeout   time.Duration `yaml:"job_timeout"   env:"WORKER_JOB_TIMEOUT"   env-default:"30s"`
	HealthAddr   string        `yaml:"health_addr"   env:"WORKER_HEALTH_ADDR"   env-default:":9091"`
}

// Paging converts the settings for the list usecases. Pages always start at 1.
func (p PaginationConfig) Paging() pagination.Config {
	return pagination.Config{DefaultPage: 1, DefaultLimit: p.DefaultLimit, MaxLimit: p.MaxLimit}
}
