package content

import (
	"context"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TagService handles tag-related business operations
type TagService struct {
	tagRepo        content.TagRepository
	postRepo       content.PostRepository
	eventPublisher shared.EventPublisher
}

// NewTagService creates a new TagService
func NewTagService(tagRepo content.TagRepository, postRepo content.PostRepository) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		postRepo: postRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TagService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new tag
func (s *TagService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTagRequest) (*TagResponse, error) {
	tag, err := content.NewTag(tenantID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	exists, err := s.tagRepo.ExistsBySlug(ctx, tenantID, tag.Slug.String(), nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateSlug
	}

	if req.Description != "" || req.Color != "" {
		if err := tag.Update(req.Name, req.Description, req.Color); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		tag.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, tag)

	return ToTagResponse(tag), nil
}

// GetByID retrieves a tag by ID
func (s *TagService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToTagResponse(tag), nil
}

// List retrieves tags for a tenant
func (s *TagService) List(ctx context.Context, tenantID uuid.UUID, filter TermListFilter) ([]TagResponse, int64, error) {
	domainFilter := termFilter(filter, "name", "asc")

	tags, err := s.tagRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tagRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = *ToTagResponse(&tags[i])
	}
	return responses, total, nil
}

// Update updates an existing tag
func (s *TagService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != tag.Slug.String() {
		slug, err := valueobject.ParseSlug(*req.Slug)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_SLUG", "Invalid slug", err)
		}
		exists, err := s.tagRepo.ExistsBySlug(ctx, tenantID, slug.String(), &tag.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrDuplicateSlug
		}
		tag.ChangeSlug(slug)
	}

	name, description, color := tag.Name, tag.Description, tag.Color
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Color != nil {
		color = *req.Color
	}
	if err := tag.Update(name, description, color); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, tag)

	return ToTagResponse(tag), nil
}

// Delete soft deletes a tag. It fails with TAG_IN_USE while a non-trashed post carries it.
func (s *TagService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := s.tagRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	usage, err := s.postRepo.CountByTag(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := tag.Deactivate(usage); err != nil {
		return err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, tag)
	return nil
}
