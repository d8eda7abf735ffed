package driven

import (
	"context"
	"io"
)

// OutputStore persists generated documents.
// Backings: local directory, S3.
type OutputStore interface {
	// Put writes data under key, replacing any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Open returns a reader for key. Returns domain.ErrNotFound if absent.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is present
	Exists(ctx context.Context, key string) (bool, error)
}
