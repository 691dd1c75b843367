// Package metrics declares the Prometheus collectors of the service and small
// helpers to record into them. Collectors register with the default registry
// at init and are served on /metrics.
package metrics
