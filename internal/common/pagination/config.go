// Package pagination computes paging windows and metadata for list endpoints.
// Everything here is pure arithmetic over already-parsed numbers, plus the
// metrics and logs of list requests.
package pagination

// Config bounds a list endpoint.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig is page 1, 10 items, at most 100.
func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 10, MaxLimit: 100}
}

// OrDefault returns DefaultConfig when c has no usable MaxLimit.
func (c Config) OrDefault() Config {
	if c.MaxLimit <= 0 {
		return DefaultConfig()
	}
	return c
}
