package storage

import (
	"context"
	"fmt"

	"microblog/internal/config"
)

// Store is the blob store the media flow writes attachment files to.
// Paths are relative, slash-separated keys ("<api_key>/<uuid>.jpg").
type Store interface {
	Save(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

// New builds the store selected by configuration.
func New(ctx context.Context, cfg *config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "disk":
		return NewDiskStore(cfg.MediaRoot)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
