// Package kv provides the key/value capability the Local Store is built on:
// get, set, delete and key listing over opaque byte values.
package kv

import "context"

// Repository is a flat key/value map. Writes are single-key upserts.
type Repository interface {
	// Get returns the value stored under key, or (nil, nil) if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
}
