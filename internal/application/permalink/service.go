package permalink

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/identity"
	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FocusKeywordMeta is the post meta key holding the SEO focus keyword
const FocusKeywordMeta = "focus_keyword"

// SettingsStore reads and writes settings sections
type SettingsStore interface {
	Values(ctx context.Context, tenantID uuid.UUID, section settings.Section) (settings.Values, error)
	Replace(ctx context.Context, tenantID uuid.UUID, section settings.Section, values settings.Values, updatedBy uuid.UUID) error
}

// Service manages permalink settings, redirects, path resolution and SEO scoring
type Service struct {
	settingsStore SettingsStore
	postRepo      content.PostRepository
	categoryRepo  content.CategoryRepository
	tagRepo       content.TagRepository
	userRepo      identity.UserRepository
	redirectRepo  permalink.RedirectRepository
	tx            shared.Transactor
	logger        *zap.Logger
}

// NewService creates a new permalink Service
func NewService(
	settingsStore SettingsStore,
	postRepo content.PostRepository,
	categoryRepo content.CategoryRepository,
	tagRepo content.TagRepository,
	userRepo identity.UserRepository,
	redirectRepo permalink.RedirectRepository,
	tx shared.Transactor,
	logger *zap.Logger,
) *Service {
	if tx == nil {
		tx = shared.NoopTransactor
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		settingsStore: settingsStore,
		postRepo:      postRepo,
		categoryRepo:  categoryRepo,
		tagRepo:       tagRepo,
		userRepo:      userRepo,
		redirectRepo:  redirectRepo,
		tx:            tx,
		logger:        logger,
	}
}

// Settings returns the permalink settings of a tenant
func (s *Service) Settings(ctx context.Context, tenantID uuid.UUID) (permalink.Settings, error) {
	values, err := s.settingsStore.Values(ctx, tenantID, settings.SectionPermalinks)
	if err != nil {
		return permalink.Settings{}, err
	}
	return settings.Decode[permalink.Settings](values)
}

// GetSettings returns the settings together with advisory warnings
func (s *Service) GetSettings(ctx context.Context, tenantID uuid.UUID) (*SettingsResponse, error) {
	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{
		Settings: current,
		Warnings: nonNil(current.Validate().Warnings),
	}, nil
}

// UpdateSettings validates and stores new settings. When the URL shape changes
// and redirectOldUrls is on, every published post, page and category gets a
// 301 from its old URL.
func (s *Service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, req UpdateSettingsRequest) (*UpdateSettingsResponse, error) {
	next := req.Settings
	if next.MaxURLLength == 0 {
		next.MaxURLLength = permalink.DefaultSettings().MaxURLLength
	}
	validation := next.Validate()
	if !validation.Valid {
		return nil, shared.NewDomainError("INVALID_PERMALINK_SETTINGS", "Permalink settings are invalid").
			WithDetails(validation.Errors...)
	}

	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := &UpdateSettingsResponse{
		Settings:         next,
		Warnings:         nonNil(validation.Warnings),
		StructureChanged: current.StructureChanged(next),
		Redirects:        []permalink.RedirectRule{},
	}

	values, err := settings.Encode(next)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if resp.StructureChanged && next.RedirectOldURLs {
			subjects, err := s.publishedSubjects(ctx, tenantID)
			if err != nil {
				return err
			}
			resp.Redirects = permalink.RedirectRules(current, next, subjects)
			plan, err := s.applyRules(ctx, tenantID, resp.Redirects)
			if err != nil {
				return err
			}
			resp.RedirectsCreated = len(plan.Create)
			resp.RedirectsUpdated = len(plan.Update)
			resp.RedirectsRemoved = len(plan.Remove)
		}
		return s.settingsStore.Replace(ctx, tenantID, settings.SectionPermalinks, values, req.UpdatedBy)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("permalink settings updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("structure", next.EffectiveStructure()),
		zap.Bool("structure_changed", resp.StructureChanged),
		zap.Int("redirects", len(resp.Redirects)),
	)
	return resp, nil
}

// Preview renders sample URLs for a structure under the tenant's other settings
func (s *Service) Preview(ctx context.Context, tenantID uuid.UUID, structure string) (*permalink.PreviewResult, error) {
	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := permalink.Preview(current, structure)
	return &result, nil
}

// Validate checks a structure template
func (s *Service) Validate(structure string) permalink.ValidationResult {
	result := permalink.ValidateStructure(structure)
	result.Errors = nonNil(result.Errors)
	result.Warnings = nonNil(result.Warnings)
	return result
}

// Presets returns the common structures
func (s *Service) Presets() []permalink.Preset {
	return permalink.Presets()
}

// Analyze scores a URL against the tenant's settings
func (s *Service) Analyze(ctx context.Context, tenantID uuid.UUID, req AnalyzeRequest) (*permalink.Analysis, error) {
	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	analysis := permalink.Analyze(current, req.URL, req.FocusKeyword)
	return &analysis, nil
}

// PostSEO scores the permalink of a post using its focus keyword
func (s *Service) PostSEO(ctx context.Context, tenantID, postID uuid.UUID) (*PostSEOResponse, error) {
	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	url, err := s.PermalinkOf(ctx, current, post)
	if err != nil {
		return nil, err
	}
	keyword := post.Meta.StringValue(FocusKeywordMeta)
	return &PostSEOResponse{
		PostID:       post.ID,
		URL:          url,
		FocusKeyword: keyword,
		Analysis:     permalink.Analyze(current, url, keyword),
	}, nil
}

// PermalinkOf generates the public path of a post or page
func (s *Service) PermalinkOf(ctx context.Context, current permalink.Settings, post *content.Post) (string, error) {
	subj, err := s.builder(post.TenantID).Subject(ctx, post)
	if err != nil {
		return "", err
	}
	return permalink.Generate(current, subj), nil
}

// Resolve maps a public path to content. Stored redirects win over content;
// published content reached through a non-canonical path is redirected.
func (s *Service) Resolve(ctx context.Context, tenantID uuid.UUID, path string) (*ResolveResponse, error) {
	resp := &ResolveResponse{Path: path}

	if redirect, err := s.redirectRepo.FindBySource(ctx, tenantID, permalink.NormalizeSource(path)); err == nil {
		if err := s.redirectRepo.IncrementHits(ctx, tenantID, redirect.ID); err != nil {
			s.logger.Warn("redirect hit count failed", zap.String("redirect_id", redirect.ID.String()), zap.Error(err))
		}
		resp.Kind = ResolvedRedirect
		resp.RedirectTo = redirect.Target
		resp.StatusCode = redirect.StatusCode
		return resp, nil
	} else if !shared.IsNotFound(err) {
		return nil, err
	}

	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	match, ok := permalink.Parse(current, path)
	if !ok {
		return nil, shared.ErrNotFound
	}
	resp.Match = &match

	switch match.Kind {
	case permalink.MatchCategory:
		category, err := s.categoryRepo.FindBySlug(ctx, tenantID, match.Slug)
		if err != nil {
			return nil, err
		}
		if !category.IsActive {
			return nil, shared.ErrNotFound
		}
		resp.Kind = ResolvedCategory
		subj, err := s.builder(tenantID).CategorySubject(ctx, category)
		if err != nil {
			return nil, err
		}
		resp.Content = &ResolvedContent{
			ID: category.ID, Type: ResolvedCategory, Title: category.Name, Slug: category.Slug.String(),
			Excerpt: category.Description, Canonical: permalink.Generate(current, subj),
		}
		return s.canonicalize(resp, path), nil
	case permalink.MatchTag:
		tag, err := s.tagRepo.FindBySlug(ctx, tenantID, match.Slug)
		if err != nil {
			return nil, err
		}
		if !tag.IsActive {
			return nil, shared.ErrNotFound
		}
		resp.Kind = ResolvedTag
		resp.Content = &ResolvedContent{
			ID: tag.ID, Type: ResolvedTag, Title: tag.Name, Slug: tag.Slug.String(),
			Excerpt: tag.Description,
			Canonical: permalink.Generate(current, permalink.Subject{
				ID: tag.ID, Type: permalink.SubjectTag, Slug: tag.Slug.String(),
			}),
		}
		return s.canonicalize(resp, path), nil
	}

	post, err := s.findMatchedPost(ctx, tenantID, match)
	if shared.IsNotFound(err) && match.Kind == permalink.MatchPost && match.Slug != "" {
		post, err = s.findByGeneratedPath(ctx, tenantID, current, path)
	}
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, shared.ErrNotFound
	}
	canonical, err := s.PermalinkOf(ctx, current, post)
	if err != nil {
		return nil, err
	}
	resp.Kind = string(post.Type)
	resp.Content = &ResolvedContent{
		ID:          post.ID,
		Type:        string(post.Type),
		Title:       post.Title,
		Slug:        post.Slug.String(),
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		Format:      string(post.Format),
		PublishedAt: post.PublishedAt,
		Canonical:   canonical,
	}
	return s.canonicalize(resp, path), nil
}

// ListRedirects lists the redirect table
func (s *Service) ListRedirects(ctx context.Context, tenantID uuid.UUID, filter RedirectListFilter) ([]RedirectResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  "created_at",
	}.Normalize()

	redirects, err := s.redirectRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.redirectRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RedirectResponse, len(redirects))
	for i := range redirects {
		out[i] = ToRedirectResponse(&redirects[i])
	}
	return out, total, nil
}

// RedirectSlugChange stores a 301 from the URL a post had under oldSlug to its
// current URL. It is a no-op when redirects are disabled or the URL is unchanged.
func (s *Service) RedirectSlugChange(ctx context.Context, tenantID, postID uuid.UUID, oldSlug string) (int, error) {
	current, err := s.Settings(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if !current.RedirectOldURLs {
		return 0, nil
	}
	post, err := s.postRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return 0, err
	}

	subj, err := s.builder(tenantID).Subject(ctx, post)
	if err != nil {
		return 0, err
	}
	oldSubj := subj
	oldSubj.Slug = oldSlug
	from, to := permalink.Generate(current, oldSubj), permalink.Generate(current, subj)
	if from == to {
		return 0, nil
	}

	var plan permalink.RedirectPlan
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		plan, err = s.applyRules(ctx, tenantID, []permalink.RedirectRule{
			{From: from, To: to, StatusCode: http.StatusMovedPermanently},
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(plan.Create) + len(plan.Update), nil
}

// publishedSubjects collects every URL-bearing published item of a tenant
func (s *Service) publishedSubjects(ctx context.Context, tenantID uuid.UUID) ([]permalink.Subject, error) {
	posts, err := s.postRepo.FindPublished(ctx, tenantID, content.PostTypePost)
	if err != nil {
		return nil, err
	}
	pages, err := s.postRepo.FindPublished(ctx, tenantID, content.PostTypePage)
	if err != nil {
		return nil, err
	}

	b := s.builder(tenantID)
	subjects, err := b.Subjects(ctx, append(posts, pages...))
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, shared.Filter{
		PageSize: shared.MaxPageSize,
		Filters:  map[string]any{content.FilterActive: true},
	}.Normalize())
	if err != nil {
		return nil, err
	}
	for i := range categories {
		subj, err := b.CategorySubject(ctx, &categories[i])
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subj)
	}
	return subjects, nil
}

// applyRules merges rules into the stored redirect table
func (s *Service) applyRules(ctx context.Context, tenantID uuid.UUID, rules []permalink.RedirectRule) (permalink.RedirectPlan, error) {
	if len(rules) == 0 {
		return permalink.RedirectPlan{}, nil
	}
	existing, err := s.redirectRepo.ListAll(ctx, tenantID)
	if err != nil {
		return permalink.RedirectPlan{}, err
	}
	plan := permalink.PlanRedirects(tenantID, existing, rules)
	for _, r := range plan.Remove {
		if err := s.redirectRepo.Delete(ctx, tenantID, r.ID); err != nil {
			return plan, err
		}
	}
	for _, r := range append(plan.Update, plan.Create...) {
		if err := s.redirectRepo.Save(ctx, r); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

// findMatchedPost looks a parsed path up by id or slug
func (s *Service) findMatchedPost(ctx context.Context, tenantID uuid.UUID, match permalink.Match) (*content.Post, error) {
	if match.PostID != "" {
		id, err := uuid.Parse(match.PostID)
		if err != nil {
			return nil, shared.ErrNotFound
		}
		post, err := s.postRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if match.Kind == permalink.MatchPage && !post.IsPage() {
			return nil, shared.ErrNotFound
		}
		return post, nil
	}
	if match.Slug == "" {
		return nil, shared.ErrNotFound
	}
	post, err := s.postRepo.FindBySlug(ctx, tenantID, strings.ToLower(match.Slug))
	if err != nil {
		return nil, err
	}
	if match.Kind == permalink.MatchPage && !post.IsPage() {
		return nil, shared.ErrNotFound
	}
	return post, nil
}

// findByGeneratedPath finds the published post whose generated URL is path.
// Stop word removal and length truncation leave a postname in the URL that
// differs from the stored slug, so those posts are only found this way.
func (s *Service) findByGeneratedPath(ctx context.Context, tenantID uuid.UUID, current permalink.Settings, path string) (*content.Post, error) {
	posts, err := s.postRepo.FindPublished(ctx, tenantID, content.PostTypePost)
	if err != nil {
		return nil, err
	}
	subjects, err := s.builder(tenantID).Subjects(ctx, posts)
	if err != nil {
		return nil, err
	}
	want := comparablePath(current, path)
	for i := range subjects {
		if comparablePath(current, permalink.Generate(current, subjects[i])) == want {
			return &posts[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func comparablePath(current permalink.Settings, path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	if current.ForceLowercase {
		path = strings.ToLower(path)
	}
	return path
}

// canonicalize turns a hit on a non-canonical path into a redirect
func (s *Service) canonicalize(resp *ResolveResponse, path string) *ResolveResponse {
	if resp.Content == nil || resp.Content.Canonical == "" {
		return resp
	}
	requested := path
	if i := strings.IndexByte(requested, '?'); i >= 0 && !strings.Contains(resp.Content.Canonical, "?") {
		requested = requested[:i]
	}
	if strings.TrimSuffix(requested, "/") != strings.TrimSuffix(resp.Content.Canonical, "/") {
		resp.RedirectTo = resp.Content.Canonical
		resp.StatusCode = http.StatusMovedPermanently
	}
	return resp
}

func (s *Service) builder(tenantID uuid.UUID) *subjectBuilder {
	return newSubjectBuilder(tenantID, s.postRepo, s.categoryRepo, s.userRepo)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
