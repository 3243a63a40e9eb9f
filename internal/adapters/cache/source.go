package cache

import (
	"context"

	"github.com/okian/regboard/internal/adapters/sheets"
	"github.com/okian/regboard/pkg/logger"
	"github.com/okian/regboard/pkg/metrics"
)

// CachedSource serves rows from a Store and falls back to the wrapped source.
// Store failures are logged and never reach the caller; fetch errors are
// not cached.
type CachedSource struct {
	next   sheets.Source
	store  Store
	logger logger.Logger
}

// NewCachedSource wraps next with store.
func NewCachedSource(next sheets.Source, store Store, l logger.Logger) *CachedSource {
	if l == nil {
		l = logger.Named("cache")
	}
	return &CachedSource{next: next, store: store, logger: l}
}

// Fetch implements sheets.Source.
func (c *CachedSource) Fetch(ctx context.Context) ([][]string, error) {
	backend := c.store.Name()

	rows, ok, err := c.store.Get(ctx)
	switch {
	case err != nil:
		metrics.RecordCache(backend, metrics.CacheError)
		c.logger.Warn(ctx, "cache read failed; fetching from sheet",
			logger.String("backend", backend), logger.Error(err))
	case ok:
		metrics.RecordCache(backend, metrics.CacheHit)
		return rows, nil
	default:
		metrics.RecordCache(backend, metrics.CacheMiss)
	}

	rows, err = c.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, rows); err != nil {
		metrics.RecordCache(backend, metrics.CacheError)
		c.logger.Warn(ctx, "cache write failed",
			logger.String("backend", backend), logger.Error(err))
	}
	return rows, nil
}
