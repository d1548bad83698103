package storage

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	mediaapp "github.com/cmsplatform/backend/internal/application/media"
)

// MemoryObjectStorage keeps object metadata in memory and hands out fake URLs.
// The server uses it when no bucket is configured; Put simulates a browser upload.
type MemoryObjectStorage struct {
	// BaseURL prefixes generated URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string]mediaapp.ObjectInfo
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "http://localhost:9000/media",
		objects: make(map[string]mediaapp.ObjectInfo),
	}
}

var _ mediaapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Put records an object as uploaded
func (s *MemoryObjectStorage) Put(storageKey, contentType string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = mediaapp.ObjectInfo{Size: size, ContentType: contentType}
}

// GenerateUploadURL returns a fake upload URL
func (s *MemoryObjectStorage) GenerateUploadURL(_ context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}, "content-type": {contentType}}
	return s.BaseURL + "/upload/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// GenerateDownloadURL returns a fake download URL
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + storageKey + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt, nil
}

// StatObject reports a recorded object
func (s *MemoryObjectStorage) StatObject(_ context.Context, storageKey string) (*mediaapp.ObjectInfo, error) {
	if storageKey == "" {
		return nil, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.objects[storageKey]
	if !ok {
		return nil, mediaapp.ErrObjectNotFound
	}
	return &info, nil
}

// DeleteObject forgets an object. Deleting a missing key succeeds like S3 does.
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}
