package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts where uploaded media bytes live. Implementations must
// make GetURL cheap; it is called per read of a media record.
type Storage interface {
	// Write stores content under the given key.
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// GetURL returns a URL a client can fetch the object from. For bucket
	// backends this is a presigned URL with the given expiry.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Delete removes the object. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
