// Package storage stores uploaded files under slash separated keys such as
// "stories/12/1/1_img_chapter_0.jpg". Keys are the same regardless of the
// backend, so the paths persisted in the database don't depend on where the
// bytes live.
package storage

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/config"
)

type Store interface {
	// Exists reports whether a file or a directory exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// MakeDirectory ensures the directory at key exists.
	MakeDirectory(ctx context.Context, key string) error
	// Store writes size bytes from r to key, replacing any existing file, and
	// returns the key it was stored at.
	Store(ctx context.Context, r io.Reader, size int64, key string) (string, error)
	// Delete removes the file at key. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error
}

// New returns the Store for the configured storage driver.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal:
		return NewLocalStore(cfg.StorageRootPath)
	case config.StorageDriverMinio:
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
