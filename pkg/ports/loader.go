package ports

import (
	"context"
	"time"

	"github.com/aretw0/aide/pkg/domain"
)

// TreeLoader obtains a decision tree from one kind of location.
type TreeLoader interface {
	// LoadTree fetches and parses the whole tree.
	LoadTree(ctx context.Context) (*domain.Tree, error)
}

// VideoSource fetches the video catalog from a remote endpoint.
type VideoSource interface {
	FetchVideos(ctx context.Context) (domain.Catalog, error)
}

// CatalogCache keeps a fetched catalog between process runs.
type CatalogCache interface {
	// Get returns the cached catalog. ok is false on a miss.
	Get(ctx context.Context, key string) (catalog domain.Catalog, ok bool, err error)

	// Set stores the catalog for ttl (0 means no expiration).
	Set(ctx context.Context, key string, catalog domain.Catalog, ttl time.Duration) error
}
