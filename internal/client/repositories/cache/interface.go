package cache

import (
	"context"
	"time"
)

// Entry is one cached response.
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

type Repository interface {
	// Put stores payload under key, replacing any previous value.
	Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error

	// Get returns the cached entry or common.ErrorNotFound.
	Get(ctx context.Context, key string) (*Entry, error)

	Delete(ctx context.Context, key string) error

	// Purge drops every cached response.
	Purge(ctx context.Context) error
}
