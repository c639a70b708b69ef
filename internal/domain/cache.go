package domain

import (
	"context"
	"time"
)

// Cache abstracts the key-value cache fronting interpretation reads.
// Implementations translate a backend miss into ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
