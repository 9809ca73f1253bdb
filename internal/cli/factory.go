package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/internal/config"
	"github.com/aretw0/aide/pkg/adapters/redis"
	"github.com/aretw0/aide/pkg/catalog"
)

// NewAssistant builds an assistant from the resolved configuration.
// The returned cleanup releases the cache connection, if any.
func NewAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger, extra ...aide.Option) (*aide.Assistant, func(), error) {
	cleanup := func() {}
	opts := []aide.Option{
		aide.WithTreeSource(cfg.Tree),
		aide.WithLogger(logger),
		aide.WithEntryNode(cfg.Entry),
		aide.WithStrictValidation(cfg.Strict),
	}

	// 1. Catalog embedded by the host page wins over everything else.
	if cfg.VideosFile != "" {
		videos, err := catalog.ReadFile(cfg.VideosFile)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, aide.WithVideos(videos))
	}

	// 2. Otherwise the endpoint, or the default path on the site, optionally
	// behind the Redis cache.
	if cfg.VideosURL != "" {
		opts = append(opts, aide.WithVideoEndpoint(cfg.VideosURL))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, aide.WithBaseURL(cfg.BaseURL))
	}
	if cfg.VideosFile == "" && cfg.Redis.Addr != "" {
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("video cache unavailable, continuing without it", "addr", cfg.Redis.Addr, "err", err)
			_ = cache.Close()
		} else {
			opts = append(opts, aide.WithCatalogCache(cache, cfg.CacheTTL))
			cleanup = func() { _ = cache.Close() }
		}
	}

	opts = append(opts, extra...)
	assistant, err := aide.New(ctx, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("error initializing aide: %w", err)
	}
	return assistant, cleanup, nil
}
