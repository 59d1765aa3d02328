package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_LocalLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	current := time.Now()

	limiter := NewLocalLimiter(100, time.Hour)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(ctx, "bot-key")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "bot-key")
	require.NoError(t, err)
	require.False(t, allowed)

	// Another credential has its own window.
	allowed, err = limiter.Allow(ctx, "other-key")
	require.NoError(t, err)
	require.True(t, allowed)
}

func Test_LocalLimiter_WindowReset(t *testing.T) {
	ctx := context.Background()
	current := time.Now()

	limiter := NewLocalLimiter(2, time.Hour)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "bot-key")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "bot-key")
	require.NoError(t, err)
	require.False(t, allowed)

	current = current.Add(time.Hour + time.Second)

	allowed, err = limiter.Allow(ctx, "bot-key")
	require.NoError(t, err)
	require.True(t, allowed)
}

func Test_LocalLimiter_Defaults(t *testing.T) {
	limiter := NewLocalLimiter(0, 0)
	require.Equal(t, DefaultLimit, limiter.limit)
	require.Equal(t, DefaultWindow, limiter.window)
}
