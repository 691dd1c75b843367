package pagination

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_list_requests_total",
		Help: "List requests by resource, HTTP status and requested page range.",
	}, []string{"resource", "status", "page_range"})

	listDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_list_duration_seconds",
		Help:    "Time to build one page of a list response.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
	}, []string{"resource"})
)

// ListTrace follows one list request from parsed params to response,
// recording it once in metrics and the log.
type ListTrace struct {
	ctx      context.Context
	resource string
	logger   *slog.Logger
	params   Params
	start    time.Time
}

// StartList begins tracing a list of resource with the given params.
func StartList(ctx context.Context, logger *slog.Logger, resource string, params Params) *ListTrace {
	logger.DebugContext(ctx, "list requested",
		slog.String("resource", resource),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.String("sort_by", params.SortBy),
		slog.String("sort_order", params.SortOrder))
	return &ListTrace{ctx: ctx, resource: resource, logger: logger, params: params, start: time.Now()}
}

// Done records a served page.
func (t *ListTrace) Done(meta Metadata, returned int) {
	elapsed := time.Since(t.start)
	listRequests.WithLabelValues(t.resource, "200", pageRange(meta.Page)).Inc()
	listDuration.WithLabelValues(t.resource).Observe(elapsed.Seconds())
	t.logger.InfoContext(t.ctx, "list served",
		slog.String("resource", t.resource),
		slog.Int("page", meta.Page),
		slog.Int("limit", meta.Limit),
		slog.Int64("total", meta.Total),
		slog.Int("returned", returned),
		slog.Duration("duration", elapsed))
}

// Fail records a rejected or failed list. Client errors log at Warn.
func (t *ListTrace) Fail(status int, err error) {
	listRequests.WithLabelValues(t.resource, strconv.Itoa(status), pageRange(t.params.Page)).Inc()
	level := slog.LevelError
	if status < 500 {
		level = slog.LevelWarn
	}
	t.logger.Log(t.ctx, level, "list failed",
		slog.String("resource", t.resource),
		slog.Int("status", status),
		slog.Int("page", t.params.Page),
		slog.Int("limit", t.params.Limit),
		slog.Any("error", err))
}

func pageRange(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
