package objectstore

import (
	"context"
	"fmt"
	"io"

	"sentinel-ingest-go/internal/config"
)

// Store is the durable blob storage contract. The pipeline writes
// snapshot evidence here and nowhere else. Backends are swappable via
// configuration, never via copied code.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Delete tolerates a missing or already-deleted blob as a no-op
	Delete(ctx context.Context, key string) error
}

// New selects the configured backend
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case "filesystem":
		return NewFilesystemStore(cfg.StorageRoot)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
