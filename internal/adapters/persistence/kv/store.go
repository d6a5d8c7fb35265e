// Package kv provides the key-value backends the session record is persisted
// in. Delete is idempotent on every backend.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key holds no value
var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
