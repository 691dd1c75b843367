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

	"content-api/internal/config"
	pgRepo "content-api/internal/infra/adapter/persistence/postgres"
	"content-api/internal/infra/db"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"

	artUC "content-api/internal/usecase/article"
	catUC "content-api/internal/usecase/category"
	cmtUC "content-api/internal/usecase/comment"

	hhttp "content-api/internal/handler/http"
	harticle "content-api/internal/handler/http/article"
	hcategory "content-api/internal/handler/http/category"
	hcomment "content-api/internal/handler/http/comment"
	"content-api/internal/handler/http/requestid"
)

// @title           Content API
// @version         1.0
// @description     記事・カテゴリ・コメントを管理する REST API
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	database := initDatabase(logger, cfg.Database)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, database, cfg)
	if err := runServer(logger, handler, cfg); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger, cfg config.DatabaseConfig) *sql.DB {
	ctx := context.Background()
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

	if cfg.MigrateOnStart {
		if err := db.MigrateUp(ctx, database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			_ = database.Close()
			os.Exit(1)
		}
	}
	return database
}

// setupServer wires repositories, use cases and routes, and wraps them in middleware.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.Config) http.Handler {
	articles := pgRepo.NewArticleRepo(database)
	categories := pgRepo.NewCategoryRepo(database)
	assoc := pgRepo.NewAssociationRepo(database)
	comments := pgRepo.NewCommentRepo(database)
	tx := db.NewTransactor(database)

	artSvc := &artUC.Service{
		Repo:       articles,
		Categories: categories,
		Assoc:      assoc,
		Comments:   comments,
		Tx:         tx,
		Pagination: cfg.Pagination.Paging(),
	}
	catSvc := &catUC.Service{Repo: categories, Tx: tx}
	cmtSvc := &cmtUC.Service{Repo: comments, Articles: articles}

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: cfg.Version, Breaker: tx})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	harticle.Register(mux, artSvc, logger)
	hcategory.Register(mux, catSvc)
	hcomment.Register(mux, cmtSvc)

	return applyMiddleware(logger, mux, cfg)
}

// applyMiddleware wraps the handler with the middleware chain.
// Outermost first: request ID, tracing, logging, recovery, metrics, rate
// limit, body limit, timeout. Tracing sits outside logging so access logs
// carry the trace ID.
func applyMiddleware(logger *slog.Logger, handler http.Handler, cfg *config.Config) http.Handler {
	h := handler
	h = hhttp.Timeout(cfg.Server.RequestTimeout)(h)
	h = hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes)(h)
	if cfg.RateLimit.Enabled {
		limiter := hhttp.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		h = limiter.Limit(h)
		logger.Info("rate limiting initialized",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}
	h = hhttp.MetricsMiddleware(h)
	h = hhttp.Recover(logger)(h)
	h = hhttp.Logging(logger)(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	return h
}

// runServer starts the HTTP server and handles graceful shutdown.
// It returns an error only when the listener fails.
func runServer(logger *slog.Logger, handler http.Handler, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout, // Prevent Slowloris attacks
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	logger.Info("shutting down server...")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
	return nil
}
