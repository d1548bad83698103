package media

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound is returned by StatObject when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo is what the store reports about an uploaded object
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStorage is the object store behind media uploads
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	StatObject(ctx context.Context, storageKey string) (*ObjectInfo, error)
	DeleteObject(ctx context.Context, storageKey string) error
}
