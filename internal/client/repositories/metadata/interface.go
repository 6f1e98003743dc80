// Package metadata is the client's durable key-value store. It survives
// process restarts and holds the session keys and other small local state.
package metadata

import (
	"context"
)

// Repository is a byte-valued key-value store. Get returns (nil, nil) for a
// missing key. SetMany, DeleteMany and DeleteManyIf apply all keys or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	// DeleteManyIf removes keys only while guardKey still holds want, and
	// reports whether it did.
	DeleteManyIf(ctx context.Context, guardKey string, want []byte, keys ...string) (bool, error)
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
