package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the statistics refresh job.
//
//   - worker_stats_refresh_runs_total: runs by status (success/failure)
//   - worker_stats_refresh_duration_seconds: duration of each run
//   - worker_stats_refresh_last_success_timestamp: Unix time of the last successful run
type Metrics struct {
	RunsTotal   *prometheus.CounterVec
	Duration    prometheus.Histogram
	LastSuccess prometheus.Gauge
}

// NewMetrics creates the job metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_stats_refresh_runs_total",
			Help: "Total number of statistics refresh runs by status (success/failure)",
		}, []string{"status"}),

		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_stats_refresh_duration_seconds",
			Help:    "Duration of statistics refresh runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
		}),

		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_stats_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful statistics refresh",
		}),
	}
}

// RecordRun counts one run and observes its duration.
// Status should be either "success" or "failure".
func (m *Metrics) RecordRun(status string, d time.Duration) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.Duration.Observe(d.Seconds())
	if status == "success" {
		m.LastSuccess.SetToCurrentTime()
	}
}
