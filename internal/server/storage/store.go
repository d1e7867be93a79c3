// Package storage keeps document blobs behind a small interface so the
// filesystem backend can be swapped for object storage without touching the
// HTTP handlers. All backends apply the same file id sanitization.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dochost/internal/server/config"
	"github.com/dmitrijs2005/dochost/internal/server/models"
)

// Store is a flat namespace of whole blobs keyed by file id.
//
// Put replaces the blob in full. There is no compare-and-swap: two
// concurrent writers of the same id race and the last one wins.
type Store interface {
	Stat(ctx context.Context, id string) (models.FileInfo, error)
	Get(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, id string, data []byte) error
}

// New builds the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageFS:
		return NewFSStore(cfg.StorageDir)
	case config.StorageS3:
		return NewS3Store(ctx, S3Options{
			User:         cfg.S3User,
			Password:     cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Prefix:       cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
