package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/responsewriter"
	"content-api/internal/observability/metrics"
)

// MetricsMiddleware records count, latency and body sizes of every request,
// labelled by route template (/articles/:id) so IDs never become label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		rec := responsewriter.Wrap(w)
		next.ServeHTTP(rec, r)

		metrics.RecordHTTPRequest(r.Method, pathutil.NormalizePath(r.URL.Path), strconv.Itoa(rec.Status()),
			time.Since(start), int(r.ContentLength), rec.Size())
	})
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
