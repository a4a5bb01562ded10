package repository

// KVRepository defines the interface for the key-value persistence layer.
// Values are opaque blobs; callers own their encoding.
type KVRepository interface {
	// Get returns the blob stored under key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous blob
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
