// FILE: internal/pkg/limiter/memory_limiter.go
package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter is the in-process fallback used when Redis is not
// configured. Counters live in a go-cache instance whose TTL is the
// fixed window.
type MemoryLimiter struct {
	mu     sync.Mutex
	cache  *cache.Cache
	limit  int64
	window time.Duration
}

func NewMemoryLimiter(limit int64, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		cache:  cache.New(window, 10*time.Minute),
		limit:  limit,
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var count int64
	if v, found := l.cache.Get(key); found {
		count = v.(int64)
	}

	count++
	if count == 1 {
		l.cache.Set(key, count, l.window)
	} else {
		// Keep the original window expiry, only bump the counter.
		if _, expiry, found := l.cache.GetWithExpiration(key); found && !expiry.IsZero() {
			l.cache.Set(key, count, time.Until(expiry))
		} else {
			l.cache.Set(key, count, l.window)
		}
	}

	return count <= l.limit, nil
}
