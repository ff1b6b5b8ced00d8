package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	cacheWarmer *question.CacheWarmer
	bgCancels   []context.CancelFunc
}

// New bootstraps logger, Postgres, Redis, the question service and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.PoolConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)

	questionRepo := repository.NewQuestionRepository(queries)
	categoryRepo := repository.NewCategoryRepository(queries)

	categoryCache := question.NewCache(redisClient, cfg.Cache.CategoryTTL)
	questionSvc := question.NewService(questionRepo, categoryRepo, categoryCache, question.ServiceOptions{
		Logger: logger,
	})

	var cacheWarmer *question.CacheWarmer
	if interval := cfg.Cache.WarmerInterval; interval > 0 {
		cacheWarmer = question.NewCacheWarmer(questionSvc, categoryCache, interval, logger)
	}

	questionHandler := question.NewHTTPHandler(questionSvc, logger)
	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, questionHandler)

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		cacheWarmer: cacheWarmer,
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run serves HTTP until ctx is canceled, SIGINT/SIGTERM arrives or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.startBackgroundWorkers(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info().Err(context.Cause(ctx)).Msg("shutdown requested")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	}

	a.shutdown()
	return runErr
}

func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.cacheWarmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.cacheWarmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category cache warmer stopped")
			}
		}()
	}
}
