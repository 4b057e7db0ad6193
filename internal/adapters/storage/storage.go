// Package storage defines the object-storage port used for associate logos.
package storage

import (
	"context"
	"io"
)

// UploadInput describes an object to store.
type UploadInput struct {
	Key         string
	ContentType string
	Body        io.Reader
	Size        int64
}

// Service stores and deletes binary assets. PutObject returns the public URL
// of the stored object.
type Service interface {
	PutObject(ctx context.Context, in UploadInput) (string, error)
	DeleteObject(ctx context.Context, key string) error
	// KeyFromURL maps a public object URL back to its storage key, so a
	// document holding only the URL can have its asset deleted. Returns ""
	// when the URL does not belong to this store.
	KeyFromURL(url string) string
}
