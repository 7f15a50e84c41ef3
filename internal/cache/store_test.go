package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"golden_hour/internal/cache"
	"golden_hour/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetInvalidate(t *testing.T) {
	store := cache.NewStore(nil)

	_, freshness := store.Get(cache.KeyPackages)
	assert.Equal(t, cache.Miss, freshness)

	store.Set(cache.KeyPackages, []models.Package{{ID: "p1", Name: "Gold"}})

	value, freshness := store.Get(cache.KeyPackages)
	assert.Equal(t, cache.Fresh, freshness)
	assert.Len(t, value.([]models.Package), 1)

	store.Invalidate(cache.KeyPackages)

	value, freshness = store.Get(cache.KeyPackages)
	assert.Equal(t, cache.Stale, freshness)
	assert.Len(t, value.([]models.Package), 1, "stale value stays readable")
}

func TestStore_FetchReadThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fetches and stores", func(t *testing.T) {
		store := cache.NewStore(nil)

		var calls int32
		value, err := cache.FetchAs(ctx, store, cache.KeyPhotos, func(ctx context.Context) ([]models.Photo, error) {
			atomic.AddInt32(&calls, 1)
			return []models.Photo{{ID: "a"}}, nil
		})
		require.NoError(t, err)
		assert.Len(t, value, 1)
		assert.EqualValues(t, 1, calls)

		// Second read is served from cache.
		_, err = cache.FetchAs(ctx, store, cache.KeyPhotos, func(ctx context.Context) ([]models.Photo, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, calls)
	})

	t.Run("invalidation forces a fresh remote call", func(t *testing.T) {
		store := cache.NewStore(nil)

		var calls int32
		fetch := func(ctx context.Context) ([]models.Photo, error) {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				return []models.Photo{{ID: "a", IsFeatured: true}}, nil
			}
			return []models.Photo{{ID: "a", IsFeatured: false}}, nil
		}

		first, err := cache.FetchAs(ctx, store, cache.KeyPhotos, fetch)
		require.NoError(t, err)
		assert.True(t, first[0].IsFeatured)

		store.Invalidate(cache.KeyPhotos)

		second, err := cache.FetchAs(ctx, store, cache.KeyPhotos, fetch)
		require.NoError(t, err)
		assert.False(t, second[0].IsFeatured)
		assert.EqualValues(t, 2, calls)
	})

	t.Run("failed fetch leaves stored value untouched", func(t *testing.T) {
		store := cache.NewStore(nil)
		store.Set(cache.KeyBookings, []models.Booking{{ID: "b1", Status: models.BookingPending}})
		store.Invalidate(cache.KeyBookings)

		_, err := store.Fetch(ctx, cache.KeyBookings, func(ctx context.Context) (any, error) {
			return nil, errors.New("backend down")
		})
		require.Error(t, err)

		value, freshness := store.Get(cache.KeyBookings)
		assert.Equal(t, cache.Stale, freshness)
		assert.Equal(t, []models.Booking{{ID: "b1", Status: models.BookingPending}}, value)
	})
}

func TestStore_FetchDeduplicatesConcurrentReads(t *testing.T) {
	ctx := context.Background()
	store := cache.NewStore(nil)

	var calls int32
	release := make(chan struct{})

	const readers = 16
	var wg sync.WaitGroup
	results := make([][]models.Video, readers)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := cache.FetchAs(ctx, store, cache.KeyVideos, func(ctx context.Context) ([]models.Video, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return []models.Video{{ID: "v1"}}, nil
			})
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}

	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls, "concurrent cold reads must share one remote call")
	for _, r := range results {
		assert.Equal(t, []models.Video{{ID: "v1"}}, r)
	}
}

func TestStore_InvalidateFamily(t *testing.T) {
	store := cache.NewStore(nil)
	store.Set(cache.KeyPhotos, []models.Photo{})
	store.Set(cache.PhotosByCategory(models.CategoryWeddings), []models.Photo{})
	store.Set(cache.KeyVideos, []models.Video{})

	store.InvalidateFamily(cache.KeyPhotos.Family())

	_, freshness := store.Get(cache.KeyPhotos)
	assert.Equal(t, cache.Stale, freshness)
	_, freshness = store.Get(cache.PhotosByCategory(models.CategoryWeddings))
	assert.Equal(t, cache.Stale, freshness)
	_, freshness = store.Get(cache.KeyVideos)
	assert.Equal(t, cache.Fresh, freshness, "other families stay fresh")
}

func TestKey_Family(t *testing.T) {
	assert.Equal(t, "photos", cache.PhotosByCategory(models.CategoryReceptions).Family())
	assert.Equal(t, "photos", cache.KeyPhotos.Family())
	assert.Equal(t, "isAdmin", cache.IsAdminFor("principal-1").Family())
	assert.NotEqual(t, cache.PackagesByKind(true), cache.PackagesByKind(false))
}
