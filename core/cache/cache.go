package cache

import (
	"context"
	"time"
)

// Cache is a process-wide keyed store with per-entry TTL.
// A miss (expired or never written) is reported via the bool return, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
