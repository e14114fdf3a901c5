// Package storage abstracts the object store holding uploaded salaysay PDFs.
package storage

import (
	"context"
	"io"
	"time"
)

// BlobStore is the object-storage surface the services need: write a blob,
// check it still exists, hand out a time-limited read link, remove it.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Exists(ctx context.Context, key string) (bool, error)
	SignedGetURL(ctx context.Context, key string, validity time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
