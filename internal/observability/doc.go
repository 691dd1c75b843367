// Package observability holds the logging, metrics and tracing shared by
// cmd/api and cmd/worker. Each concern lives in its own subpackage.
package observability
