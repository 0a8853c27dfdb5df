package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value backend with per-key expiry.
type Store interface {
	// Get returns ErrMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
