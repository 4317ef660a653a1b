package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBucketStoreAllow(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	for i := 0; i < 3; i++ {
		result, err := store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 3, result.Limit)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestInMemoryBucketStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	result, err := store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, result.Allowed)

	result, err = store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = store.Allow(ctx, "ip:5.6.7.8", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestInMemoryBucketStoreWindowSlides(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	now := time.Now()
	store.clock = func() time.Time { return now }

	result, err := store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, result.Allowed)

	result, err = store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, result.Allowed)

	now = now.Add(61 * time.Second)
	result, err = store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestInMemoryBucketStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	_, err := store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)

	store.Reset("ip:1.2.3.4")

	result, err := store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
