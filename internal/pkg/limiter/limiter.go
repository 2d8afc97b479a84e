// FILE: internal/pkg/limiter/limiter.go
package limiter

import "context"

// Limiter enforces a fixed-window request quota per key.
type Limiter interface {
	// Allow records one request for key and reports whether it fits the quota.
	Allow(ctx context.Context, key string) (bool, error)
}
