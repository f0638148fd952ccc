package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/adapter/chromedp_fetcher"
	"github.com/user/filmdata-service/internal/adapter/httpfetch"
	"github.com/user/filmdata-service/internal/adapter/postgres"
	redis_adapter "github.com/user/filmdata-service/internal/adapter/redis"
	"github.com/user/filmdata-service/internal/adapter/tmdb"
	"github.com/user/filmdata-service/internal/delivery/http/handler"
	"github.com/user/filmdata-service/internal/delivery/http/router"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/internal/usecase"
	"github.com/user/filmdata-service/pkg/config"
	"github.com/user/filmdata-service/pkg/logger"
	"github.com/user/filmdata-service/pkg/metrics"
	"github.com/user/filmdata-service/pkg/telemetry"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer log.Sync()

	// --- Metrics and tracing ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, "filmdata-service", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("could not set up tracing", zap.Error(err))
	}

	// --- Database Connections ---
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	defer dbpool.Close()
	if err := postgres.EnsureSchema(ctx, dbpool); err != nil {
		log.Fatal("unable to prepare schema", zap.Error(err))
	}
	log.Info("PostgreSQL connection pool established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("unable to connect to redis", zap.Error(err))
	}
	log.Info("Redis connection established")

	// --- Repositories ---
	queueRepo := redis_adapter.NewQueueRepo(rdb)
	jobRepo := redis_adapter.NewJobRepo(rdb, cfg.JobTTL)
	pageCache := redis_adapter.NewPageCache(rdb, cfg.PageCacheTTL)
	rowRepo := postgres.NewRowRepo(dbpool)
	failedRepo := postgres.NewFailedFetchRepo(dbpool)

	// --- Fetchers ---
	fetchOpts := httpfetch.Options{
		MaxAttempts: cfg.FetchMaxAttempts,
		Backoff:     cfg.FetchBackoff,
		MaxBackoff:  cfg.FetchMaxBackoff,
		Timeout:     cfg.FetchTimeout,
		UserAgent:   cfg.FetchUserAgent,
		Proxies:     cfg.FetchProxy,
		Logger:      log,
		Metrics:     m,
	}

	var pages repository.PageFetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		browser := chromedp_fetcher.New(chromedp_fetcher.Options{
			MaxAttempts: cfg.FetchMaxAttempts,
			Backoff:     cfg.FetchBackoff,
			Timeout:     cfg.FetchTimeout,
			UserAgent:   cfg.FetchUserAgent,
			Proxy:       firstProxy(cfg.FetchProxy),
			Logger:      log,
			Metrics:     m,
		})
		defer browser.Close()
		pages = browser
	default:
		pages = httpfetch.New(fetchOpts)
	}
	pages = usecase.NewCachedFetcher(pages, pageCache, log)

	var movies repository.MovieSource
	tmdbOpts := fetchOpts
	tmdbOpts.Target = httpfetch.TargetTMDB
	if client, err := tmdb.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey, tmdbOpts); err != nil {
		log.Warn("films jobs are disabled", zap.Error(err))
	} else {
		movies = client
	}

	// --- Use Cases ---
	assembler := &usecase.Assembler{Movies: movies, Pages: pages, Logger: log, Metrics: m}
	jobManager := usecase.NewJobManager(queueRepo, jobRepo, failedRepo, m, log)
	jobWorker := usecase.NewJobWorker(queueRepo, jobRepo, rowRepo, failedRepo, assembler, m, log)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		jobWorker.Run(ctx, cfg.WorkerPollInterval)
	}()

	// --- HTTP Server ---
	checks := map[string]handler.HealthCheck{
		"postgres": dbpool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	apiHandler := handler.NewHandler(jobManager, checks, log)
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler, log, m, reg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
			stop()
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort), zap.String("fetch_mode", cfg.FetchMode))

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	<-workerDone
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Warn("failed to flush traces", zap.Error(err))
	}

	log.Info("server exiting")
}

// firstProxy picks one proxy for the browser, which cannot rotate per request.
func firstProxy(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(first)
}
