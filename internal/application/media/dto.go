package media

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/media"
	"github.com/google/uuid"
)

// CreateUploadRequest starts a direct-to-storage upload
type CreateUploadRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	Size        int64  `json:"size" binding:"required,min=1"`
	AltText     string `json:"alt_text" binding:"max=500"`
	Caption     string `json:"caption"`
}

// UploadResponse carries the presigned PUT URL for a pending media item
type UploadResponse struct {
	Media     MediaResponse `json:"media"`
	UploadURL string        `json:"upload_url"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// UpdateMediaRequest edits descriptive fields
type UpdateMediaRequest struct {
	AltText *string `json:"alt_text" binding:"omitempty,max=500"`
	Caption *string `json:"caption"`
}

// ListFilter holds media list query parameters
type ListFilter struct {
	Search      string `form:"search"`
	ContentType string `form:"content_type"`
	Status      string `form:"status" binding:"omitempty,oneof=pending uploaded"`
	Page        int    `form:"page" binding:"min=0"`
	PageSize    int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy     string `form:"order_by" binding:"omitempty,oneof=created_at updated_at filename size content_type"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MediaResponse is the API view of a media item. URL is only set once the
// upload is confirmed.
type MediaResponse struct {
	ID          uuid.UUID  `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	StorageKey  string     `json:"storage_key"`
	URL         string     `json:"url,omitempty"`
	AltText     string     `json:"alt_text"`
	Caption     string     `json:"caption"`
	Status      string     `json:"status"`
	IsImage     bool       `json:"is_image"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToMediaResponse converts a domain media item
func ToMediaResponse(m *media.Media) MediaResponse {
	return MediaResponse{
		ID:          m.ID,
		Filename:    m.Filename,
		ContentType: m.ContentType,
		Size:        m.Size,
		StorageKey:  m.StorageKey,
		AltText:     m.AltText,
		Caption:     m.Caption,
		Status:      string(m.Status),
		IsImage:     m.IsImage(),
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// DownloadResponse is a short-lived download link
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
