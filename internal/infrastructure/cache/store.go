package cache

import (
	"context"
	"time"
)

// Store is the backing key-value store behind the cache service. Redis in
// deployments, the in-memory store in tests and local development.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}
