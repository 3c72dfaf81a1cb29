package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_Window(t *testing.T) {
	t.Parallel()

	l := NewMemory(3, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		allowed, _, err := l.Allow(ctx, "1.2.3.4", now)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, retryAfter, err := l.Allow(ctx, "1.2.3.4", now)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// A different key has its own window.
	allowed, _, err = l.Allow(ctx, "5.6.7.8", now)
	require.NoError(t, err)
	assert.True(t, allowed)

	// After the window resets the key is admitted again.
	allowed, _, err = l.Allow(ctx, "1.2.3.4", now.Add(61*time.Second))
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_Window(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedis(client, 2, time.Minute)
	ctx := context.Background()
	now := time.Now()

	allowed, _, err := l.Allow(ctx, "1.2.3.4", now)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = l.Allow(ctx, "1.2.3.4", now)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, retryAfter, err := l.Allow(ctx, "1.2.3.4", now)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Expire the window and the key is admitted again.
	mr.FastForward(2 * time.Minute)
	allowed, _, err = l.Allow(ctx, "1.2.3.4", now)
	require.NoError(t, err)
	assert.True(t, allowed)
}
