package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer keeps the category cache populated so list requests rarely hit Postgres for categories.
type CacheWarmer struct {
	service  *Service
	cache    CategoryCache
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCacheWarmer(service *Service, cache CategoryCache, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheWarmer{
		service:  service,
		cache:    cache,
		interval: interval,
		timeout:  4 * time.Second,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
	}
}

// Run refreshes immediately and then on every tick until ctx is done.
func (w *CacheWarmer) Run(ctx context.Context) error {
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category cache warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheWarmer) refresh(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()

	categories, err := w.service.LoadCategories(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	if err := w.cache.Set(ctx, categories); err != nil {
		w.logger.Warn().Err(err).Msg("category cache write failed")
		return
	}
	w.logger.Debug().Int("categories", len(categories)).Msg("category cache refreshed")
}
