// Package catalog loads the ordered video catalog referenced by video nodes.
package catalog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
)

// Source names where a loaded catalog came from.
type Source string

const (
	SourceInjected Source = "injected"
	SourceCache    Source = "cache"
	SourceNetwork  Source = "network"
	SourceNone     Source = "none"
)

// DefaultCacheKey is the cache key used when none is configured.
const DefaultCacheKey = "aide:videos"

// Loader resolves the catalog: injected list first, then the network, then empty.
type Loader struct {
	injected domain.Catalog
	source   ports.VideoSource
	cache    ports.CatalogCache
	cacheKey string
	cacheTTL time.Duration
	logger   *slog.Logger
	observe  func(Source, int)
}

// Option configures a Loader.
type Option func(*Loader)

// WithInjected supplies a pre-loaded catalog. A non-nil list, even empty, wins over
// every other source and no network call is made.
func WithInjected(videos domain.Catalog) Option {
	return func(l *Loader) {
		l.injected = videos
	}
}

// WithSource sets the network source used when nothing was injected.
func WithSource(src ports.VideoSource) Option {
	return func(l *Loader) {
		l.source = src
	}
}

// WithCache puts a read-through cache in front of the network source.
func WithCache(cache ports.CatalogCache, key string, ttl time.Duration) Option {
	return func(l *Loader) {
		l.cache = cache
		if key != "" {
			l.cacheKey = key
		}
		l.cacheTTL = ttl
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithObserver registers a callback receiving the source and size of each load.
func WithObserver(fn func(Source, int)) Option {
	return func(l *Loader) {
		l.observe = fn
	}
}

// NewLoader creates a catalog loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		cacheKey: DefaultCacheKey,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the catalog. It never fails: a network failure degrades to an
// empty catalog so the conversation can go on without videos.
func (l *Loader) Load(ctx context.Context) domain.Catalog {
	catalog, src := l.resolve(ctx)
	if l.observe != nil {
		l.observe(src, len(catalog))
	}
	return catalog
}

func (l *Loader) resolve(ctx context.Context) (domain.Catalog, Source) {
	if l.injected != nil {
		l.logger.Info("videos loaded from page", "catalog_size", len(l.injected), "source", SourceInjected)
		return l.injected, SourceInjected
	}

	if l.source == nil {
		l.logger.Warn("no video source configured, continuing without videos")
		return domain.Catalog{}, SourceNone
	}

	if l.cache != nil {
		cached, ok, err := l.cache.Get(ctx, l.cacheKey)
		switch {
		case err != nil:
			l.logger.Warn("video cache read failed", "key", l.cacheKey, "err", err)
		case ok:
			l.logger.Info("videos loaded from cache", "catalog_size", len(cached), "source", SourceCache)
			return cached, SourceCache
		}
	}

	videos, err := l.source.FetchVideos(ctx)
	if err != nil {
		l.logger.Warn("unable to load videos from the API", "err", err)
		return domain.Catalog{}, SourceNone
	}
	l.logger.Info("videos loaded from the API", "catalog_size", len(videos), "source", SourceNetwork)

	if l.cache != nil {
		if err := l.cache.Set(ctx, l.cacheKey, videos, l.cacheTTL); err != nil {
			l.logger.Warn("video cache write failed", "key", l.cacheKey, "err", err)
		}
	}
	return videos, SourceNetwork
}

// Get returns the video at index; out of range is absent, which callers treat as "omit video".
func Get(catalog domain.Catalog, index int) (domain.Video, bool) {
	return catalog.Get(index)
}
