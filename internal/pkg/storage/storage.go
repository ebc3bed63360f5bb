package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface for file storage backends.
type Storage interface {
	// Put stores a file under key and returns an error on failure.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the public URL for a stored key.
	PublicURL(key string) string
}
