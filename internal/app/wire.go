package service

import (
	"context"
	"fmt"

	"github.com/okian/regboard/internal/adapters/cache"
	"github.com/okian/regboard/internal/adapters/sheets"
	"github.com/okian/regboard/internal/config"
	"github.com/okian/regboard/internal/domain/registration"
	"github.com/okian/regboard/pkg/logger"
)

// Build wires the Sheets source, the optional cache and the Service from cfg.
// Credentials are resolved first so a bad setting fails before any remote
// call. The returned cleanup releases the cache connection and is never nil.
func Build(ctx context.Context, cfg *config.Config, sheetOpts ...sheets.Option) (*Service, func(), error) {
	noop := func() {}

	loc, err := cfg.Location()
	if err != nil {
		return nil, noop, err
	}

	creds, err := config.ResolveCredentials(ctx, cfg)
	if err != nil {
		return nil, noop, err
	}

	opts := append([]sheets.Option{
		sheets.WithCredentialsJSON(creds.JSON),
		sheets.WithTimeout(cfg.FetchTimeout),
	}, sheetOpts...)
	src, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.RangeName, opts...)
	if err != nil {
		return nil, noop, err
	}

	var (
		source  sheets.Source = src
		cleanup               = noop
	)
	switch cfg.CacheBackend {
	case config.CacheMemory:
		source = cache.NewCachedSource(src, cache.NewMemoryStore(cfg.CacheTTL), nil)
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("cache: %w", err)
		}
		store := cache.NewRedisStore(client, cfg.RedisKeyPrefix, cfg.SpreadsheetID, cfg.RangeName, cfg.CacheTTL)
		source = cache.NewCachedSource(src, store, nil)
		cleanup = func() { _ = store.Close() }
	}

	logger.Named("service").Info(ctx, "pipeline wired",
		logger.String("credentials", creds.Source),
		logger.String("cache", cfg.CacheBackend),
		logger.String("timezone", loc.String()),
	)

	svc := New(
		WithSource(source),
		WithTitle(cfg.PageTitle),
		WithTransformOptions(registration.Options{
			TimestampColumn: cfg.TimestampColumn,
			Location:        loc,
		}),
		WithColumns(cfg.TeamSizeColumn, cfg.OrganizationColumn),
	)
	return svc, cleanup, nil
}
