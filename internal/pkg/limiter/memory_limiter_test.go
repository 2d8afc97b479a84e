// FILE: internal/pkg/limiter/memory_limiter_test.go
package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "user-a")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit must be denied")
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = l.Allow(ctx, "user-b")
	require.NoError(t, err)
	assert.True(t, allowed, "a different key has its own quota")
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l := NewMemoryLimiter(1, 30*time.Millisecond)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, allowed, "counter must reset after the window expires")
}
