// Package kv defines the key-value port used for persisted state. The
// history blob goes through this boundary so the concrete storage
// technology stays an external collaborator.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value port over opaque string keys. Values are
// written as whole blobs; there is no partial update.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
