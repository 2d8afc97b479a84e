package storage

import (
	"context"
	"fmt"
)

// Config selects and configures the storage backend.
type Config struct {
	Backend        string // "s3" | "local"
	S3             S3Config
	LocalMediaPath string
	LocalPublicURL string
}

func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Backend {
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set when using the s3 storage backend")
		}
		return NewS3Storage(ctx, cfg.S3)
	case "local", "":
		return NewLocalStorage(cfg.LocalMediaPath, cfg.LocalPublicURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (use 's3' or 'local')", cfg.Backend)
	}
}
