package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		c.Close()
	})
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var out cachedPost
	found, err := GetJSON(ctx, "post:1", &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := cachedPost{ID: 1, Title: "Cached"}
	require.NoError(t, SetJSON(ctx, "post:1", in, time.Minute))

	found, err = GetJSON(ctx, "post:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestCacheAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			*dest = cachedPost{ID: 7, Title: "From source"}
			return nil
		}
	}

	var got cachedPost
	require.NoError(t, CacheAside(ctx, "post:7", &got, time.Minute, fetch(&got)))
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, 1, fetches)

	// Second call is served from the cache.
	var again cachedPost
	require.NoError(t, CacheAside(ctx, "post:7", &again, time.Minute, fetch(&again)))
	assert.Equal(t, got, again)
	assert.Equal(t, 1, fetches)
}

func TestCacheAside_FetchErrorNotCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetchErr := errors.New("source unavailable")
	var got cachedPost
	err := CacheAside(ctx, "post:9", &got, time.Minute, func() error {
		return fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)

	found, err := GetJSON(ctx, "post:9", &got)
	require.NoError(t, err)
	assert.False(t, found, "a failed fetch must not populate the cache")
}

func TestInvalidate(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "post:1", cachedPost{ID: 1}, time.Minute))
	Invalidate(ctx, "post:1")

	var out cachedPost
	found, err := GetJSON(ctx, "post:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTTLExpiry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "post:1", cachedPost{ID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out cachedPost
	found, err := GetJSON(ctx, "post:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientIsANoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out cachedPost
	found, err := GetJSON(ctx, "post:1", &out)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "post:1", cachedPost{ID: 1}, time.Minute))
	Invalidate(ctx, "post:1")

	// Without a cache every read falls through to the source.
	fetches := 0
	require.NoError(t, CacheAside(ctx, "post:1", &out, time.Minute, func() error {
		fetches++
		out = cachedPost{ID: 1}
		return nil
	}))
	assert.Equal(t, 1, fetches)
}
