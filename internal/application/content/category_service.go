package content

import (
	"context"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo   content.CategoryRepository
	postRepo       content.PostRepository
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo content.CategoryRepository,
	postRepo content.PostRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CategoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := content.NewCategory(tenantID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	// Check if slug already exists
	exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, category.Slug.String(), nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateSlug
	}

	if req.Description != "" || req.SortOrder != 0 {
		if err := category.Update(req.Name, req.Description, req.SortOrder); err != nil {
			return nil, err
		}
	}
	if err := s.setParent(ctx, category, req.ParentID); err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		category.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, category)

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories for a tenant, active only unless asked otherwise
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter TermListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := termFilter(filter, "sort_order", "asc")

	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// Update updates an existing category
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug.String() {
		slug, err := valueobject.ParseSlug(*req.Slug)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_SLUG", "Invalid slug", err)
		}
		exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, slug.String(), &category.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrDuplicateSlug
		}
		category.ChangeSlug(slug)
	}

	name, description, sortOrder := category.Name, category.Description, category.SortOrder
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}
	if err := category.Update(name, description, sortOrder); err != nil {
		return nil, err
	}

	if req.ClearParent {
		if err := category.SetParent(nil, nil); err != nil {
			return nil, err
		}
	} else if req.ParentID != nil && (category.ParentID == nil || *category.ParentID != *req.ParentID) {
		if err := s.setParent(ctx, category, req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, category)

	return ToCategoryResponse(category), nil
}

// Delete soft deletes a category. It fails with CATEGORY_IN_USE while posts or
// active children reference it.
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	postCount, err := s.postRepo.CountByCategory(ctx, tenantID, id)
	if err != nil {
		return err
	}
	children, err := s.categoryRepo.CountActiveChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := category.Deactivate(postCount, children); err != nil {
		return err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, category)
	return nil
}

// setParent resolves the ancestry of the new parent so the aggregate can
// reject cycles and deep trees
func (s *CategoryService) setParent(ctx context.Context, category *content.Category, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}

	var ancestry []uuid.UUID
	next := parentID
	for next != nil && len(ancestry) <= content.MaxCategoryDepth {
		parent, err := s.categoryRepo.FindByIDForTenant(ctx, category.TenantID, *next)
		if err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return err
		}
		if len(ancestry) == 0 && !parent.IsActive {
			return shared.NewDomainError("INVALID_PARENT", "Parent category is deleted")
		}
		ancestry = append(ancestry, parent.ID)
		if parent.ID == category.ID {
			break
		}
		next = parent.ParentID
	}

	return category.SetParent(parentID, ancestry)
}

// termFilter builds the shared filter of category and tag lists
func termFilter(filter TermListFilter, defaultOrder, defaultDir string) shared.Filter {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if f.OrderBy == "" {
		f.OrderBy = defaultOrder
		f.OrderDir = defaultDir
	}
	f = f.Normalize()
	if !filter.IncludeInactive {
		f.Filters[content.FilterActive] = true
	}
	return f
}
