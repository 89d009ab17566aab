package domain

// KeyValueStore is the synchronous persistence medium behind the caches and the
// history. Values are opaque serialized text; the store knows nothing about TTLs.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) ([]byte, bool)

	// Set stores value under key. Returns ErrQuotaExceeded when the write
	// would push the store over its quota.
	Set(key string, value []byte) error

	// Delete removes a single key
	Delete(key string)

	// DeletePrefix removes every key starting with prefix
	DeletePrefix(prefix string)

	Close() error
}
