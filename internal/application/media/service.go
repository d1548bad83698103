package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmsplatform/backend/internal/domain/media"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds the upload policy
type Config struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxUploadSize     int64
	// AllowedTypes narrows media.IsAllowedContentType; empty keeps the full list
	AllowedTypes []string
}

// DefaultConfig returns the default upload policy
func DefaultConfig() Config {
	return Config{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
		MaxUploadSize:     media.MaxFileSize,
	}
}

// Service manages the media library
type Service struct {
	repo    media.Repository
	storage ObjectStorage
	config  Config
	logger  *zap.Logger
}

// NewService creates a media service
func NewService(repo media.Repository, storage ObjectStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		storage: storage,
		config:  DefaultConfig(),
		logger:  logger,
	}
}

// SetConfig replaces the upload policy
func (s *Service) SetConfig(cfg Config) {
	if cfg.UploadURLExpiry <= 0 {
		cfg.UploadURLExpiry = 15 * time.Minute
	}
	if cfg.DownloadURLExpiry <= 0 {
		cfg.DownloadURLExpiry = time.Hour
	}
	if cfg.MaxUploadSize <= 0 || cfg.MaxUploadSize > media.MaxFileSize {
		cfg.MaxUploadSize = media.MaxFileSize
	}
	s.config = cfg
}

// CreateUpload saves a pending record and returns a presigned PUT URL
func (s *Service) CreateUpload(ctx context.Context, tenantID uuid.UUID, req CreateUploadRequest, uploadedBy *uuid.UUID) (*UploadResponse, error) {
	if !s.typeAllowed(req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}
	if req.Size > s.config.MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes", s.config.MaxUploadSize))
	}

	item, err := media.New(tenantID, req.Filename, req.ContentType, req.Size, uploadedBy)
	if err != nil {
		return nil, err
	}
	if req.AltText != "" || req.Caption != "" {
		if err := item.Describe(req.AltText, req.Caption); err != nil {
			return nil, err
		}
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, item.StorageKey, item.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("storage_key", item.StorageKey), zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	return &UploadResponse{
		Media:     ToMediaResponse(item),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// Confirm checks the object landed in storage and marks the item uploaded.
// The stored size wins over the size declared at CreateUpload.
func (s *Service) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*MediaResponse, error) {
	item, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	info, err := s.storage.StatObject(ctx, item.StorageKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Please upload the file first.")
		}
		s.logger.Error("Failed to stat uploaded object", zap.String("storage_key", item.StorageKey), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if info.Size > s.config.MaxUploadSize {
		if err := s.storage.DeleteObject(ctx, item.StorageKey); err != nil {
			s.logger.Warn("Failed to delete oversized object", zap.String("storage_key", item.StorageKey), zap.Error(err))
		}
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "Uploaded file exceeds the maximum upload size")
	}

	if err := item.Confirm(); err != nil {
		return nil, err
	}
	if info.Size > 0 {
		item.Size = info.Size
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Media upload confirmed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("media_id", item.ID.String()),
		zap.Int64("size", item.Size))

	resp := ToMediaResponse(item)
	s.attachURL(ctx, &resp, item)
	return &resp, nil
}

// GetByID returns one media item
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*MediaResponse, error) {
	item, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item.Status == media.StatusDeleted {
		return nil, shared.ErrNotFound
	}
	resp := ToMediaResponse(item)
	s.attachURL(ctx, &resp, item)
	return &resp, nil
}

// List returns a page of the library
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]MediaResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ContentType != "" {
		domainFilter.Filters["content_type"] = filter.ContentType
	}
	domainFilter = domainFilter.Normalize()

	items, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MediaResponse, len(items))
	for i := range items {
		responses[i] = ToMediaResponse(&items[i])
		s.attachURL(ctx, &responses[i], &items[i])
	}
	return responses, total, nil
}

// Update edits alt text and caption
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateMediaRequest) (*MediaResponse, error) {
	item, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	altText, caption := item.AltText, item.Caption
	if req.AltText != nil {
		altText = *req.AltText
	}
	if req.Caption != nil {
		caption = *req.Caption
	}
	if err := item.Describe(altText, caption); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToMediaResponse(item)
	s.attachURL(ctx, &resp, item)
	return &resp, nil
}

// DownloadURL presigns a GET for an uploaded item
func (s *Service) DownloadURL(ctx context.Context, tenantID, id uuid.UUID) (*DownloadResponse, error) {
	item, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item.Status != media.StatusUploaded {
		return nil, shared.NewDomainError("MEDIA_NOT_UPLOADED", "Media upload has not been confirmed")
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, item.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign download", zap.String("storage_key", item.StorageKey), zap.Error(err))
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}
	return &DownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// Delete removes the stored object and the row. A failed object delete is
// logged; the row still goes.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	item, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, item.StorageKey); err != nil {
		s.logger.Warn("Failed to delete media object",
			zap.String("media_id", item.ID.String()),
			zap.String("storage_key", item.StorageKey),
			zap.Error(err))
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}

func (s *Service) typeAllowed(contentType string) bool {
	if !media.IsAllowedContentType(contentType) {
		return false
	}
	if len(s.config.AllowedTypes) == 0 {
		return true
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, allowed := range s.config.AllowedTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == ct || (strings.HasSuffix(allowed, "/*") && strings.HasPrefix(ct, strings.TrimSuffix(allowed, "*"))) {
			return true
		}
	}
	return false
}

func (s *Service) attachURL(ctx context.Context, resp *MediaResponse, item *media.Media) {
	if item.Status != media.StatusUploaded {
		return
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, item.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Debug("Failed to presign media URL", zap.String("media_id", item.ID.String()), zap.Error(err))
		return
	}
	resp.URL = url
}
