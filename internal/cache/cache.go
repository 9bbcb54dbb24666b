// Package cache holds small string caches with a fixed TTL, used for
// read-through lookups of community options.
package cache

import (
	"context"
)

// Store returns "" and a nil error on a miss.
type Store interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}
