package ports

import "context"

// KeyValueStore is the durable storage the wallet state is mirrored to.
// Values are opaque blobs; a nil value with nil error means the key is not
// set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close()
}
