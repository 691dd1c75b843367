// Package worker runs the background statistics job: a cron-scheduled
// refresh of the row-count gauges plus the health server that exposes it.
package worker

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// PoolStatser reports connection pool statistics. *sql.DB satisfies it.
type PoolStatser interface {
	Stats() sql.DBStats
}

// Stats holds the row counts read by one refresh.
type Stats struct {
	Articles   int64
	Categories int64
	Comments   int64
}

// StatsRefresher reads the table counts and publishes them as gauges.
// It implements cron.Job.
type StatsRefresher struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Comments   repository.CommentRepository
	// Pool is optional; when set its stats are published too.
	Pool    PoolStatser
	Metrics *Metrics
	Logger  *slog.Logger
	// Timeout bounds one refresh. Zero means no limit beyond ctx.
	Timeout time.Duration
	// Observer, when set, sees the outcome of every Run.
	Observer RefreshObserver
}

// Refresh counts articles, categories and comments concurrently and updates
// the gauges. On any failure no gauge is touched.
func (r *StatsRefresher) Refresh(ctx context.Context) (Stats, error) {
	start := time.Now()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var st Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return timed("count_articles", func() (err error) {
			st.Articles, err = r.Articles.Count(gctx, repository.ArticleFilter{})
			return err
		})
	})
	g.Go(func() error {
		return timed("count_categories", func() (err error) {
			st.Categories, err = r.Categories.Count(gctx)
			return err
		})
	})
	g.Go(func() error {
		return timed("count_comments", func() (err error) {
			st.Comments, err = r.Comments.Count(gctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		r.Metrics.RecordRun("failure", time.Since(start))
		return Stats{}, fmt.Errorf("refresh stats: %w", err)
	}

	metrics.UpdateArticlesTotal(st.Articles)
	metrics.UpdateCategoriesTotal(st.Categories)
	metrics.UpdateCommentsTotal(st.Comments)
	if r.Pool != nil {
		ps := r.Pool.Stats()
		metrics.UpdateDBConnectionStats(ps.InUse, ps.Idle)
	}

	r.Metrics.RecordRun("success", time.Since(start))
	return st, nil
}

// Run refreshes once with a background context and logs the outcome.
func (r *StatsRefresher) Run() {
	start := time.Now()
	st, err := r.Refresh(context.Background())
	if r.Observer != nil {
		r.Observer.ObserveRefresh(st, err, start)
	}
	if err != nil {
		// 機密情報をマスクしてログ出力
		r.logger().Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		return
	}
	r.logger().Info("stats refreshed",
		slog.Int64("articles", st.Articles),
		slog.Int64("categories", st.Categories),
		slog.Int64("comments", st.Comments),
		slog.Duration("duration", time.Since(start)))
}

func (r *StatsRefresher) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func timed(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordDBQuery(operation, time.Since(start))
	return err
}
