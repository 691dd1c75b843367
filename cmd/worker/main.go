package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"content-api/internal/config"
	pgRepo "content-api/internal/infra/adapter/persistence/postgres"
	"content-api/internal/infra/db"
	workerPkg "content-api/internal/infra/worker"
	"content-api/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger, cfg.Database)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.Worker.CronSchedule),
		slog.String("timezone", cfg.Worker.Timezone),
		slog.Duration("job_timeout", cfg.Worker.JobTimeout),
		slog.String("health_addr", cfg.Worker.HealthAddr))

	healthServer := workerPkg.NewHealthServer(cfg.Worker.HealthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	refresher := &workerPkg.StatsRefresher{
		Articles:   pgRepo.NewArticleRepo(database),
		Categories: pgRepo.NewCategoryRepo(database),
		Comments:   pgRepo.NewCommentRepo(database),
		Pool:       database,
		Metrics:    workerPkg.NewMetrics(prometheus.DefaultRegisterer),
		Logger:     logger,
		Timeout:    cfg.Worker.JobTimeout,
		Observer:   healthServer,
	}

	startCronWorker(ctx, logger, cfg.Worker, refresher, healthServer)
}

// initDatabase opens the database connection. Migrations belong to cmd/api.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) *sql.DB {
	database, err := db.Open(ctx, cfg.DSN, db.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// startCronWorker refreshes once at startup, then on every tick until ctx is done.
func startCronWorker(ctx context.Context, logger *slog.Logger, cfg config.WorkerConfig, refresher *workerPkg.StatsRefresher, healthServer *workerPkg.HealthServer) {
	c, err := workerPkg.NewScheduler(cfg.CronSchedule, cfg.Location(), refresher, logger)
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}

	refresher.Run()
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// Wait for a running refresh to finish
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
