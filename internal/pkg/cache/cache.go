package cache

import "context"

// Cache is a plain key/value store with no ordering or transaction
// guarantees. Implementations may fail; callers treat any error as a
// miss and fall back to the authoritative store.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value for key. Entries live until deleted or the
	// cache is cleared; there is no TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, keys ...string) error
}
