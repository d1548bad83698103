package content

import (
	"context"
	"errors"
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/cmsplatform/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

const (
	// maxSlugAttempts bounds the numeric suffix search for generated slugs
	maxSlugAttempts = 50
	maxPageDepth    = 10
)

// Renderer turns stored bodies into HTML and excerpts
type Renderer interface {
	HTML(format content.ContentFormat, body string) (string, error)
	Excerpt(format content.ContentFormat, body string) string
}

// PostService handles posts and pages
type PostService struct {
	postRepo       content.PostRepository
	categoryRepo   content.CategoryRepository
	tagRepo        content.TagRepository
	tx             shared.Transactor
	renderer       Renderer
	eventPublisher shared.EventPublisher
	metrics        *telemetry.ContentMetrics
	now            func() time.Time
}

// NewPostService creates a new PostService. A nil transactor runs without transactions.
func NewPostService(
	postRepo content.PostRepository,
	categoryRepo content.CategoryRepository,
	tagRepo content.TagRepository,
	tx shared.Transactor,
	renderer Renderer,
) *PostService {
	if tx == nil {
		tx = shared.NoopTransactor
	}
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		tx:           tx,
		renderer:     renderer,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PostService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetContentMetrics sets the content metrics collector
func (s *PostService) SetContentMetrics(m *telemetry.ContentMetrics) {
	s.metrics = m
}

// Create creates a post or page
func (s *PostService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	postType := req.Type
	if postType == "" {
		postType = content.PostTypePost
	}

	post, err := content.NewPost(tenantID, postType, req.Title, content.ContentFormat(req.Format))
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		slug, err := valueobject.ParseSlug(req.Slug)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_SLUG", "Invalid slug", err)
		}
		if err := s.ensureSlugFree(ctx, tenantID, slug, nil); err != nil {
			return nil, err
		}
		post.SetSlug(slug)
	} else {
		slug, err := s.uniqueSlug(ctx, tenantID, post.Slug, nil)
		if err != nil {
			return nil, err
		}
		post.SetSlug(slug)
	}

	post.Content = req.Content
	post.Excerpt = req.Excerpt
	if post.Excerpt == "" {
		post.Excerpt = s.renderer.Excerpt(post.Format, post.Content)
	}
	post.SetMeta(req.Meta)
	post.SetMenuOrder(req.MenuOrder)
	if req.AuthorID != nil {
		post.SetAuthor(*req.AuthorID)
		post.SetCreatedBy(*req.AuthorID)
	}
	if err := s.applyParent(ctx, post, req.ParentID); err != nil {
		return nil, err
	}
	if err := s.applyTerms(ctx, post, &req.CategoryIDs, &req.TagIDs); err != nil {
		return nil, err
	}
	if err := s.applyStatus(post, req.Status, req.PublishedAt); err != nil {
		return nil, err
	}

	if err := s.save(ctx, post, nil, nil); err != nil {
		return nil, err
	}
	s.afterSave(ctx, post)

	return s.toResponse(post)
}

// GetByID retrieves a post of the given type
func (s *PostService) GetByID(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*PostResponse, error) {
	post, err := s.find(ctx, tenantID, id, postType)
	if err != nil {
		return nil, err
	}
	return s.toResponse(post)
}

// List retrieves posts or pages matching the filter
func (s *PostService) List(ctx context.Context, tenantID uuid.UUID, filter PostListFilter) ([]PostListResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
		if filter.Type == content.PostTypePage {
			domainFilter.OrderBy = "menu_order"
			domainFilter.OrderDir = "asc"
		}
	}
	domainFilter = domainFilter.Normalize()

	if filter.Type != "" {
		domainFilter.Filters[content.FilterType] = string(filter.Type)
	}
	if filter.Status != "" {
		domainFilter.Filters[content.FilterStatus] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters[content.FilterCategoryID] = *filter.CategoryID
	}
	if filter.TagID != nil {
		domainFilter.Filters[content.FilterTagID] = *filter.TagID
	}
	if filter.AuthorID != nil {
		domainFilter.Filters[content.FilterAuthorID] = *filter.AuthorID
	}
	if filter.ParentID != nil {
		domainFilter.Filters[content.FilterParentID] = *filter.ParentID
	}
	if filter.IncludeTrash {
		domainFilter.Filters[content.FilterIncludeTrash] = true
	}

	posts, err := s.postRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PostListResponse, len(posts))
	for i := range posts {
		responses[i] = ToPostListResponse(&posts[i])
	}
	return responses, total, nil
}

// Update applies a partial update. A slug change on published content emits
// PostSlugChanged so the old URL gets a redirect.
func (s *PostService) Update(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.find(ctx, tenantID, id, postType)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != post.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	oldCategories := append([]uuid.UUID(nil), post.CategoryIDs...)
	oldTags := append([]uuid.UUID(nil), post.TagIDs...)

	if req.Title != nil || req.Content != nil || req.Excerpt != nil || req.Format != nil {
		title, body, excerpt, format := post.Title, post.Content, post.Excerpt, post.Format
		if req.Title != nil {
			title = *req.Title
		}
		if req.Content != nil {
			body = *req.Content
		}
		if req.Format != nil {
			format = content.ContentFormat(*req.Format)
		}
		if req.Excerpt != nil {
			excerpt = *req.Excerpt
		}
		if excerpt == "" {
			excerpt = s.renderer.Excerpt(format, body)
		}
		if err := post.UpdateContent(title, body, excerpt, format); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != post.Slug.String() {
		slug, err := valueobject.ParseSlug(*req.Slug)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_SLUG", "Invalid slug", err)
		}
		if err := s.ensureSlugFree(ctx, tenantID, slug, &post.ID); err != nil {
			return nil, err
		}
		post.SetSlug(slug)
	}

	if req.Meta != nil {
		post.SetMeta(req.Meta)
	}
	if req.MenuOrder != nil {
		post.SetMenuOrder(*req.MenuOrder)
	}
	if req.ClearParent {
		if err := post.SetParent(nil); err != nil {
			return nil, err
		}
	} else if req.ParentID != nil {
		if err := s.applyParent(ctx, post, req.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.applyTerms(ctx, post, req.CategoryIDs, req.TagIDs); err != nil {
		return nil, err
	}
	if req.Status != nil && *req.Status != string(post.Status) {
		if err := s.applyStatus(post, *req.Status, req.PublishedAt); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, post, oldCategories, oldTags); err != nil {
		return nil, err
	}
	s.afterSave(ctx, post)

	return s.toResponse(post)
}

// Publish publishes a post now, or schedules it when the date lies in the future
func (s *PostService) Publish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req PublishPostRequest) (*PostResponse, error) {
	post, err := s.find(ctx, tenantID, id, postType)
	if err != nil {
		return nil, err
	}
	if err := post.Publish(s.now(), req.PublishedAt); err != nil {
		return nil, err
	}
	if err := s.save(ctx, post, post.CategoryIDs, post.TagIDs); err != nil {
		return nil, err
	}
	s.afterSave(ctx, post)
	return s.toResponse(post)
}

// Unpublish returns a published or scheduled post to draft
func (s *PostService) Unpublish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*PostResponse, error) {
	return s.transition(ctx, tenantID, id, postType, func(p *content.Post) error { return p.Unpublish() })
}

// Trash soft deletes a post
func (s *PostService) Trash(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error {
	_, err := s.transition(ctx, tenantID, id, postType, func(p *content.Post) error { return p.Trash() })
	return err
}

// Restore brings a post back from the trash
func (s *PostService) Restore(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*PostResponse, error) {
	return s.transition(ctx, tenantID, id, postType, func(p *content.Post) error { return p.Restore(s.now()) })
}

// DeletePermanently removes a trashed post
func (s *PostService) DeletePermanently(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error {
	post, err := s.find(ctx, tenantID, id, postType)
	if err != nil {
		return err
	}
	if err := post.MarkDeleted(); err != nil {
		return err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.postRepo.DeleteForTenant(ctx, tenantID, post.ID); err != nil {
			return err
		}
		return s.refreshTermCounts(ctx, tenantID, post.CategoryIDs, post.TagIDs)
	})
	if err != nil {
		return err
	}
	s.afterSave(ctx, post)
	return nil
}

// SetCategories replaces the categories of a post
func (s *PostService) SetCategories(ctx context.Context, tenantID, id uuid.UUID, categoryIDs []uuid.UUID) (*PostResponse, error) {
	return s.Update(ctx, tenantID, id, content.PostTypePost, UpdatePostRequest{CategoryIDs: &categoryIDs})
}

// SetTags replaces the tags of a post
func (s *PostService) SetTags(ctx context.Context, tenantID, id uuid.UUID, tagIDs []uuid.UUID) (*PostResponse, error) {
	return s.Update(ctx, tenantID, id, content.PostTypePost, UpdatePostRequest{TagIDs: &tagIDs})
}

// PublishDue publishes every scheduled post of a tenant whose date has passed.
// It returns the number of posts published.
func (s *PostService) PublishDue(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	due, err := s.postRepo.FindDueScheduled(ctx, tenantID, now)
	if err != nil {
		return 0, err
	}

	published := 0
	var errs []error
	for i := range due {
		post := &due[i]
		if !post.PublishIfDue(now) {
			continue
		}
		if err := s.postRepo.Save(ctx, post); err != nil {
			errs = append(errs, err)
			continue
		}
		published++
		s.afterSave(ctx, post)
	}
	return published, errors.Join(errs...)
}

func (s *PostService) transition(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, fn func(*content.Post) error) (*PostResponse, error) {
	post, err := s.find(ctx, tenantID, id, postType)
	if err != nil {
		return nil, err
	}
	if err := fn(post); err != nil {
		return nil, err
	}
	// status changes move the post in or out of the term counts
	if err := s.save(ctx, post, post.CategoryIDs, post.TagIDs); err != nil {
		return nil, err
	}
	s.afterSave(ctx, post)
	return s.toResponse(post)
}

// find loads a post and checks it has the expected type
func (s *PostService) find(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*content.Post, error) {
	post, err := s.postRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if postType != "" && post.Type != postType {
		return nil, shared.ErrNotFound
	}
	return post, nil
}

// save persists the post and recounts the terms it left or joined
func (s *PostService) save(ctx context.Context, post *content.Post, oldCategories, oldTags []uuid.UUID) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.postRepo.Save(ctx, post); err != nil {
			return err
		}
		return s.refreshTermCounts(ctx, post.TenantID,
			unionIDs(oldCategories, post.CategoryIDs),
			unionIDs(oldTags, post.TagIDs))
	})
}

func (s *PostService) refreshTermCounts(ctx context.Context, tenantID uuid.UUID, categoryIDs, tagIDs []uuid.UUID) error {
	if len(categoryIDs) > 0 {
		if err := s.categoryRepo.RefreshPostCounts(ctx, tenantID, categoryIDs...); err != nil {
			return err
		}
	}
	if len(tagIDs) > 0 {
		if err := s.tagRepo.RefreshUsageCounts(ctx, tenantID, tagIDs...); err != nil {
			return err
		}
	}
	return nil
}

// afterSave publishes pending events and records publish metrics
func (s *PostService) afterSave(ctx context.Context, post *content.Post) {
	if s.metrics != nil {
		for _, event := range post.GetDomainEvents() {
			if event.EventType() == content.EventTypePostPublished {
				s.metrics.RecordPostPublished(ctx, post.TenantID, string(post.Type))
			}
		}
	}
	// handlers failing must not fail the request
	_ = shared.PublishPending(ctx, s.eventPublisher, post)
}

func (s *PostService) ensureSlugFree(ctx context.Context, tenantID uuid.UUID, slug valueobject.Slug, excludeID *uuid.UUID) error {
	exists, err := s.postRepo.ExistsBySlug(ctx, tenantID, slug.String(), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrDuplicateSlug
	}
	return nil
}

// uniqueSlug appends -2, -3, ... to a generated slug until it is free
func (s *PostService) uniqueSlug(ctx context.Context, tenantID uuid.UUID, base valueobject.Slug, excludeID *uuid.UUID) (valueobject.Slug, error) {
	candidate := base
	for n := 2; n <= maxSlugAttempts+1; n++ {
		exists, err := s.postRepo.ExistsBySlug(ctx, tenantID, candidate.String(), excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base.WithSuffix(n)
	}
	return base.WithSuffix(maxSlugAttempts + 2 + int(uuid.New().ID()%100000)), nil
}

// applyParent validates that a page parent exists and is itself a page
func (s *PostService) applyParent(ctx context.Context, post *content.Post, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if !post.IsPage() {
		return shared.NewDomainError("INVALID_PARENT", "Only pages can have a parent")
	}
	parent, err := s.postRepo.FindByIDForTenant(ctx, post.TenantID, *parentID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_PARENT", "Parent page not found")
		}
		return err
	}
	if !parent.IsPage() {
		return shared.NewDomainError("INVALID_PARENT", "Parent must be a page")
	}
	for p, depth := parent, 0; p.ParentID != nil && depth < maxPageDepth; depth++ {
		if *p.ParentID == post.ID {
			return shared.NewDomainError("INVALID_PARENT", "Page hierarchy cannot contain cycles")
		}
		next, err := s.postRepo.FindByIDForTenant(ctx, post.TenantID, *p.ParentID)
		if err != nil {
			break
		}
		p = next
	}
	return post.SetParent(parentID)
}

// applyTerms replaces categories and tags after checking they exist and are active.
// A nil pointer leaves the assignment unchanged.
func (s *PostService) applyTerms(ctx context.Context, post *content.Post, categoryIDs, tagIDs *[]uuid.UUID) error {
	if categoryIDs != nil {
		ids := *categoryIDs
		if len(ids) > 0 && !post.IsPage() {
			found, err := s.categoryRepo.FindByIDs(ctx, post.TenantID, ids)
			if err != nil {
				return err
			}
			if err := requireActive(ids, categoryIDSet(found), "category"); err != nil {
				return err
			}
		}
		if err := post.SetCategories(ids); err != nil {
			return err
		}
	}
	if tagIDs != nil {
		ids := *tagIDs
		if len(ids) > 0 && !post.IsPage() {
			found, err := s.tagRepo.FindByIDs(ctx, post.TenantID, ids)
			if err != nil {
				return err
			}
			if err := requireActive(ids, tagIDSet(found), "tag"); err != nil {
				return err
			}
		}
		if err := post.SetTags(ids); err != nil {
			return err
		}
	}
	return nil
}

// applyStatus moves a post to the requested status
func (s *PostService) applyStatus(post *content.Post, status string, publishedAt *time.Time) error {
	switch content.PostStatus(status) {
	case "", content.PostStatusDraft:
		if post.IsPublished() || post.Status == content.PostStatusFuture {
			return post.Unpublish()
		}
		return nil
	case content.PostStatusPending, content.PostStatusPrivate:
		return post.ChangeStatus(content.PostStatus(status))
	case content.PostStatusPublish:
		return post.Publish(s.now(), publishedAt)
	case content.PostStatusFuture:
		if publishedAt == nil || !publishedAt.After(s.now()) {
			return shared.NewDomainError("INVALID_INPUT", "Scheduling requires a publish date in the future")
		}
		return post.Publish(s.now(), publishedAt)
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown status "+status)
	}
}

func (s *PostService) toResponse(post *content.Post) (*PostResponse, error) {
	resp := ToPostResponse(post)
	html, err := s.renderer.HTML(post.Format, post.Content)
	if err != nil {
		return nil, err
	}
	resp.ContentHTML = html
	return resp, nil
}

func categoryIDSet(categories []content.Category) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		set[c.ID] = c.IsActive
	}
	return set
}

func tagIDSet(tags []content.Tag) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(tags))
	for _, t := range tags {
		set[t.ID] = t.IsActive
	}
	return set
}

func requireActive(ids []uuid.UUID, active map[uuid.UUID]bool, kind string) error {
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if !active[id] {
			return shared.NewDomainError("INVALID_INPUT", "Unknown or deleted "+kind+" "+id.String())
		}
	}
	return nil
}

func unionIDs(a, b []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	out := make([]uuid.UUID, 0, len(a)+len(b))
	for _, list := range [][]uuid.UUID{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
