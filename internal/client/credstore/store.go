// Package credstore provides the secure local key-value store the session
// layer persists its token pair into. Values are encrypted at rest and
// survive process restarts.
package credstore

import "context"

// Store is the Credential Store boundary: a durable key-value store with
// at-rest encryption. Get returns ("", nil) when the key is absent; Delete
// of an absent key is not an error.
type Store interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
