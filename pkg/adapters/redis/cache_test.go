package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/aide/pkg/adapters/redis"
	"github.com/aretw0/aide/pkg/catalog"
	"github.com/aretw0/aide/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Cache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return mr, redis.NewFromClient(client, redis.WithPrefix("test:"))
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, cache := setup(t)

	_, ok, err := cache.Get(ctx, "videos")
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.Catalog{{ID: "abc", Title: "T"}, {ID: "def"}}
	require.NoError(t, cache.Set(ctx, "videos", want, time.Minute))
	assert.True(t, mr.Exists("test:videos"))

	got, ok, err := cache.Get(ctx, "videos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "videos")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with its TTL")
}

func TestCache_CorruptEntry(t *testing.T) {
	mr, cache := setup(t)
	require.NoError(t, mr.Set("test:videos", "not json"))

	_, _, err := cache.Get(context.Background(), "videos")
	assert.Error(t, err)
}

func TestCache_BehindCatalogLoader(t *testing.T) {
	ctx := context.Background()
	_, cache := setup(t)

	calls := 0
	src := sourceFunc(func(ctx context.Context) (domain.Catalog, error) {
		calls++
		return domain.Catalog{{ID: "abc"}}, nil
	})
	loader := catalog.NewLoader(catalog.WithSource(src), catalog.WithCache(cache, "", time.Hour))

	assert.Len(t, loader.Load(ctx), 1)
	assert.Len(t, loader.Load(ctx), 1)
	assert.Equal(t, 1, calls)
}

type sourceFunc func(ctx context.Context) (domain.Catalog, error)

func (f sourceFunc) FetchVideos(ctx context.Context) (domain.Catalog, error) {
	return f(ctx)
}
