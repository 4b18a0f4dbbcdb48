package ports

import "context"

// ObjectStorage stores uploaded blobs under bucket-scoped keys.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
