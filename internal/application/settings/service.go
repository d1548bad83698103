package settings

import (
	"context"
	"sort"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PageFinder loads pages referenced by reading settings
type PageFinder interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Post, error)
}

// Service reads and writes settings sections. Reads go through the cache;
// writes invalidate it.
type Service struct {
	repo           settings.Repository
	cache          settings.Cache
	pages          PageFinder
	eventPublisher shared.EventPublisher
}

// NewService creates a new settings Service. cache may be nil.
func NewService(repo settings.Repository, cache settings.Cache, pages PageFinder) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		pages: pages,
	}
}

// SetEventPublisher sets the event publisher. Without one the service
// invalidates the cache itself.
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetAll returns the effective values of every section
func (s *Service) GetAll(ctx context.Context, tenantID uuid.UUID) (map[string]settings.Values, error) {
	stored, err := s.repo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	bySection := make(map[settings.Section]*settings.Setting, len(stored))
	for i := range stored {
		bySection[stored[i].Section] = &stored[i]
	}

	out := make(map[string]settings.Values, len(settings.Sections()))
	for _, section := range settings.Sections() {
		if setting, ok := bySection[section]; ok {
			out[string(section)] = setting.Effective()
			continue
		}
		out[string(section)] = settings.Defaults(section)
	}
	return out, nil
}

// Get returns the effective values of one section
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, sectionName string) (*SettingResponse, error) {
	section, err := settings.ParseSection(sectionName)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if values, err := s.cache.Get(ctx, tenantID, section); err == nil && values != nil {
			return &SettingResponse{Section: string(section), Values: values}, nil
		}
	}

	setting, err := s.load(ctx, tenantID, section)
	if err != nil {
		return nil, err
	}
	values := setting.Effective()
	if s.cache != nil {
		_ = s.cache.Set(ctx, tenantID, section, values, 0)
	}
	return toResponse(setting, values), nil
}

// Values returns the effective document of a section, for other services
func (s *Service) Values(ctx context.Context, tenantID uuid.UUID, section settings.Section) (settings.Values, error) {
	resp, err := s.Get(ctx, tenantID, string(section))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Update merges a partial document into a section
func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, sectionName string, req UpdateSettingRequest) (*SettingResponse, error) {
	section, err := settings.ParseSection(sectionName)
	if err != nil {
		return nil, err
	}
	if err := requireGeneric(section); err != nil {
		return nil, err
	}
	if len(req.Values) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No settings provided")
	}

	setting, err := s.load(ctx, tenantID, section)
	if err != nil {
		return nil, err
	}
	if err := setting.Merge(req.Values, req.UpdatedBy); err != nil {
		return nil, err
	}

	values := setting.Effective()
	if section == settings.SectionReading {
		if err := s.validateReading(ctx, tenantID, values); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}
	s.announce(ctx, setting, req.Values)

	return toResponse(setting, values), nil
}

// Reset drops the stored values of a section so its defaults apply again
func (s *Service) Reset(ctx context.Context, tenantID uuid.UUID, sectionName string, updatedBy uuid.UUID) (*SettingResponse, error) {
	section, err := settings.ParseSection(sectionName)
	if err != nil {
		return nil, err
	}
	if err := requireGeneric(section); err != nil {
		return nil, err
	}

	setting, err := s.load(ctx, tenantID, section)
	if err != nil {
		return nil, err
	}
	changed := setting.Values
	setting.Reset(updatedBy)
	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}
	s.announce(ctx, setting, changed)

	return toResponse(setting, setting.Effective()), nil
}

// Homepage reports what the site root shows. A static homepage that is
// missing, not a page or not published falls back to the latest posts and
// the reason is reported; the stored settings are left untouched.
func (s *Service) Homepage(ctx context.Context, tenantID uuid.UUID) (*HomepageResponse, error) {
	values, err := s.Values(ctx, tenantID, settings.SectionReading)
	if err != nil {
		return nil, err
	}
	reading, err := settings.Decode[settings.ReadingSettings](values)
	if err != nil {
		return nil, err
	}

	resp := &HomepageResponse{
		Type:          reading.HomepageType,
		PostsPerPage:  reading.PostsPerPage,
		EffectiveType: reading.HomepageType,
		PageID:        parseOptionalID(reading.HomepageID),
		PostsPageID:   parseOptionalID(reading.PostsPageID),
	}
	if reading.HomepageType != settings.HomepageStaticPage {
		return resp, nil
	}

	reason, err := s.homepageProblem(ctx, tenantID, resp.PageID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		resp.EffectiveType = settings.HomepageLatestPosts
		resp.ValidationFailed = true
		resp.Reason = reason
	}
	return resp, nil
}

func (s *Service) homepageProblem(ctx context.Context, tenantID uuid.UUID, pageID *uuid.UUID) (string, error) {
	if pageID == nil {
		return HomepageMissingPageID, nil
	}
	page, err := s.pages.FindByIDForTenant(ctx, tenantID, *pageID)
	if err != nil {
		if shared.IsNotFound(err) {
			return HomepagePageNotFound, nil
		}
		return "", err
	}
	if !page.IsPage() {
		return HomepagePageNotFound, nil
	}
	if !page.IsPublished() {
		return HomepagePageNotPublished, nil
	}
	return "", nil
}

// Replace stores a complete typed document, used by the permalink settings
func (s *Service) Replace(ctx context.Context, tenantID uuid.UUID, section settings.Section, values settings.Values, updatedBy uuid.UUID) error {
	setting, err := s.load(ctx, tenantID, section)
	if err != nil {
		return err
	}
	if err := setting.Merge(values, updatedBy); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return err
	}
	s.announce(ctx, setting, values)
	return nil
}

// Invalidate drops a cached section
func (s *Service) Invalidate(ctx context.Context, tenantID uuid.UUID, section settings.Section) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, tenantID, section)
}

func (s *Service) announce(ctx context.Context, setting *settings.Setting, changed settings.Values) {
	if s.eventPublisher == nil {
		_ = s.Invalidate(ctx, setting.TenantID, setting.Section)
		return
	}
	keys := make([]string, 0, len(changed))
	for k := range changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := s.eventPublisher.Publish(ctx, settings.NewUpdatedEvent(setting, keys)); err != nil {
		_ = s.Invalidate(ctx, setting.TenantID, setting.Section)
	}
}

// requireGeneric rejects sections owned by a dedicated endpoint. Permalink
// changes have to run through the permalink service to get their redirects.
func requireGeneric(section settings.Section) error {
	if section == settings.SectionPermalinks {
		return shared.NewDomainError("MANAGED_SECTION", "Permalink settings are changed through /settings/permalink")
	}
	return nil
}

func parseOptionalID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// load returns the stored document or an empty one for a new section
func (s *Service) load(ctx context.Context, tenantID uuid.UUID, section settings.Section) (*settings.Setting, error) {
	setting, err := s.repo.FindBySection(ctx, tenantID, section)
	if err != nil {
		if shared.IsNotFound(err) {
			return settings.NewSetting(tenantID, section), nil
		}
		return nil, err
	}
	return setting, nil
}

// validateReading checks that a static homepage and posts page point at published pages
func (s *Service) validateReading(ctx context.Context, tenantID uuid.UUID, values settings.Values) error {
	reading, err := settings.Decode[settings.ReadingSettings](values)
	if err != nil {
		return err
	}
	if reading.HomepageType != settings.HomepageStaticPage {
		return nil
	}
	if err := s.requirePublishedPage(ctx, tenantID, reading.HomepageID, "homepageId"); err != nil {
		return err
	}
	if reading.PostsPageID != nil && *reading.PostsPageID != "" {
		if *reading.PostsPageID == *reading.HomepageID {
			return shared.NewDomainError("INVALID_SETTING", "postsPageId must differ from homepageId")
		}
		return s.requirePublishedPage(ctx, tenantID, reading.PostsPageID, "postsPageId")
	}
	return nil
}

func (s *Service) requirePublishedPage(ctx context.Context, tenantID uuid.UUID, rawID *string, field string) error {
	if rawID == nil || *rawID == "" {
		return shared.NewDomainError("MISSING_PAGE_ID", field+" is required when homepageType is static_page")
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return shared.NewDomainError("PAGE_NOT_FOUND", field+" does not reference a page")
	}
	page, err := s.pages.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("PAGE_NOT_FOUND", field+" does not reference a page")
		}
		return err
	}
	if !page.IsPage() {
		return shared.NewDomainError("PAGE_NOT_FOUND", field+" does not reference a page")
	}
	if !page.IsPublished() {
		return shared.NewDomainError("PAGE_NOT_PUBLISHED", field+" references a page that is not published")
	}
	return nil
}
