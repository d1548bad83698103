// Package media models files uploaded to object storage and referenced from content.
package media

import (
	"context"
	"path"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxFileSize is the largest accepted upload (50MB)
const MaxFileSize = 50 * 1024 * 1024

// Status represents the upload state of a media item
type Status string

const (
	StatusPending  Status = "pending"
	StatusUploaded Status = "uploaded"
	StatusDeleted  Status = "deleted"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
	"video/mp4":       true,
	"audio/mpeg":      true,
	"text/plain":      true,
}

// IsAllowedContentType reports whether uploads of the MIME type are accepted
func IsAllowedContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return allowedContentTypes[ct]
}

// Media is a file in the tenant's library
type Media struct {
	shared.TenantAggregateRoot
	Filename    string
	ContentType string
	Size        int64
	StorageKey  string
	AltText     string
	Caption     string
	Status      Status
	UploadedBy  *uuid.UUID
}

// New creates a pending media record with a tenant-scoped storage key
func New(tenantID uuid.UUID, filename, contentType string, size int64, uploadedBy *uuid.UUID) (*Media, error) {
	filename = strings.TrimSpace(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if filename == "" || filename == "." || filename == "/" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "File name cannot be empty")
	}
	if len(filename) > 255 {
		return nil, shared.NewDomainError("INVALID_FILENAME", "File name cannot exceed 255 characters")
	}
	if size <= 0 || size > MaxFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be between 1 byte and 50MB")
	}
	if !IsAllowedContentType(contentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE", "Content type '"+contentType+"' is not allowed")
	}

	m := &Media{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Filename:            filename,
		ContentType:         contentType,
		Size:                size,
		Status:              StatusPending,
		UploadedBy:          uploadedBy,
	}
	m.StorageKey = StorageKey(tenantID, m.ID, filename)
	return m, nil
}

// StorageKey builds the object key: tenants/{tenant}/media/{id}/{filename}
func StorageKey(tenantID, id uuid.UUID, filename string) string {
	return "tenants/" + tenantID.String() + "/media/" + id.String() + "/" + sanitizeFilename(filename)
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Confirm marks the upload as finished
func (m *Media) Confirm() error {
	switch m.Status {
	case StatusUploaded:
		return shared.NewDomainError("ALREADY_CONFIRMED", "Media is already confirmed")
	case StatusDeleted:
		return shared.NewDomainError("CANNOT_CONFIRM_DELETED", "Cannot confirm deleted media")
	}
	m.Status = StatusUploaded
	m.IncrementVersion()
	return nil
}

// Describe updates the alt text and caption
func (m *Media) Describe(altText, caption string) error {
	if m.Status == StatusDeleted {
		return shared.NewDomainError("CANNOT_UPDATE_DELETED", "Cannot update deleted media")
	}
	m.AltText = strings.TrimSpace(altText)
	m.Caption = strings.TrimSpace(caption)
	m.IncrementVersion()
	return nil
}

// Delete soft deletes the record
func (m *Media) Delete() error {
	if m.Status == StatusDeleted {
		return shared.NewDomainError("ALREADY_DELETED", "Media is already deleted")
	}
	m.Status = StatusDeleted
	m.IncrementVersion()
	return nil
}

// IsImage reports whether the file is an image
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.ContentType, "image/")
}

// Repository persists media records
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Media, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Media, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, m *Media) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
