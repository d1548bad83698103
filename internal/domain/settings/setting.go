package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Section names a group of settings stored as one JSON document
type Section string

const (
	SectionGeneral    Section = "general"
	SectionWriting    Section = "writing"
	SectionReading    Section = "reading"
	SectionDiscussion Section = "discussion"
	SectionMedia      Section = "media"
	SectionPermalinks Section = "permalinks"
	SectionPrivacy    Section = "privacy"
)

// Sections lists every known section
func Sections() []Section {
	return []Section{SectionGeneral, SectionWriting, SectionReading, SectionDiscussion, SectionMedia, SectionPermalinks, SectionPrivacy}
}

// ParseSection validates a section name
func ParseSection(name string) (Section, error) {
	for _, s := range Sections() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", shared.NewDomainError("INVALID_SECTION", fmt.Sprintf("Unknown settings section %q", name))
}

// Values is a settings document
type Values map[string]any

// Setting is the stored document of one section of one tenant
type Setting struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Section   Section
	Values    Values
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSetting creates an empty document for a section
func NewSetting(tenantID uuid.UUID, section Section) *Setting {
	now := time.Now()
	return &Setting{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Section:   section,
		Values:    Values{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Effective returns the stored values laid over the section defaults
func (s *Setting) Effective() Values {
	out := Defaults(s.Section)
	for k, v := range s.Values {
		out[k] = v
	}
	return out
}

// Merge applies a partial update. Keys not present in the defaults are rejected
// so typos do not silently pile up in the document.
func (s *Setting) Merge(partial Values, updatedBy uuid.UUID) error {
	defaults := Defaults(s.Section)
	for k := range partial {
		if _, ok := defaults[k]; !ok {
			return shared.NewDomainError("INVALID_SETTING", fmt.Sprintf("Unknown setting %q in section %s", k, s.Section))
		}
	}
	next := Values{}
	for k, v := range s.Values {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	if err := ValidateSection(s.Section, mergeOver(defaults, next)); err != nil {
		return err
	}
	s.Values = next
	if updatedBy != uuid.Nil {
		s.UpdatedBy = &updatedBy
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Reset drops every stored value so the section falls back to its defaults
func (s *Setting) Reset(updatedBy uuid.UUID) {
	s.Values = Values{}
	if updatedBy != uuid.Nil {
		s.UpdatedBy = &updatedBy
	}
	s.UpdatedAt = time.Now()
}

func mergeOver(base, over Values) Values {
	out := Values{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Decode converts a document into a typed struct through its JSON form
func Decode[T any](values Values) (T, error) {
	var out T
	raw, err := json.Marshal(values)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, shared.WrapDomainError("INVALID_SETTING", "Settings have the wrong shape", err)
	}
	return out, nil
}

// Encode converts a typed struct into a document
func Encode(v any) (Values, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := Values{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSection checks the structural rules of a section. Cross-aggregate
// rules (homepage must be a published page) are enforced by the application.
func ValidateSection(section Section, values Values) error {
	switch section {
	case SectionGeneral:
		general, err := Decode[GeneralSettings](values)
		if err != nil {
			return err
		}
		return general.Validate()
	case SectionReading:
		reading, err := Decode[ReadingSettings](values)
		if err != nil {
			return err
		}
		return reading.Validate()
	case SectionPermalinks:
		p, err := Decode[permalink.Settings](values)
		if err != nil {
			return err
		}
		if result := p.Validate(); !result.Valid {
			return shared.NewDomainError("INVALID_PERMALINK_SETTINGS", "Permalink settings are invalid").WithDetails(result.Errors...)
		}
	case SectionMedia:
		media, err := Decode[MediaSettings](values)
		if err != nil {
			return err
		}
		if media.MaxUploadSizeMB < 1 || media.MaxUploadSizeMB > 1024 {
			return shared.NewDomainError("INVALID_SETTING", "maxUploadSizeMb must be between 1 and 1024")
		}
	}
	return nil
}

// GeneralSettings is the typed form of the general section
type GeneralSettings struct {
	SiteTitle   string `json:"siteTitle"`
	Tagline     string `json:"tagline"`
	SiteURL     string `json:"siteUrl"`
	AdminEmail  string `json:"adminEmail"`
	Timezone    string `json:"timezone"`
	DateFormat  string `json:"dateFormat"`
	TimeFormat  string `json:"timeFormat"`
	Language    string `json:"language"`
	Currency    string `json:"currency"`
	StartOfWeek int    `json:"startOfWeek"`
}

// Validate checks the general section
func (g GeneralSettings) Validate() error {
	if g.SiteTitle == "" {
		return shared.NewDomainError("INVALID_SETTING", "siteTitle cannot be empty")
	}
	if g.AdminEmail != "" {
		if _, err := mail.ParseAddress(g.AdminEmail); err != nil {
			return shared.NewDomainError("INVALID_SETTING", "adminEmail is not a valid email address")
		}
	}
	if _, err := time.LoadLocation(g.Timezone); err != nil {
		return shared.NewDomainError("INVALID_SETTING", "timezone is not a known IANA zone")
	}
	if g.StartOfWeek < 0 || g.StartOfWeek > 6 {
		return shared.NewDomainError("INVALID_SETTING", "startOfWeek must be between 0 and 6")
	}
	return nil
}

// Homepage display modes
const (
	HomepageLatestPosts = "latest_posts"
	HomepageStaticPage  = "static_page"
)

// ReadingSettings is the typed form of the reading section
type ReadingSettings struct {
	HomepageType  string  `json:"homepageType"`
	HomepageID    *string `json:"homepageId"`
	PostsPageID   *string `json:"postsPageId"`
	PostsPerPage  int     `json:"postsPerPage"`
	ShowSummary   string  `json:"showSummary"`
	ExcerptLength int     `json:"excerptLength"`
	NoIndex       bool    `json:"discourageSearchEngines"`
}

// Validate checks the reading section
func (r ReadingSettings) Validate() error {
	switch r.HomepageType {
	case HomepageLatestPosts:
	case HomepageStaticPage:
		if r.HomepageID == nil || *r.HomepageID == "" {
			return shared.NewDomainError("MISSING_PAGE_ID", "homepageId is required when homepageType is static_page")
		}
		if _, err := uuid.Parse(*r.HomepageID); err != nil {
			return shared.NewDomainError("INVALID_SETTING", "homepageId must be a page id")
		}
	default:
		return shared.NewDomainError("INVALID_SETTING", "homepageType must be latest_posts or static_page")
	}
	if r.PostsPerPage < 1 || r.PostsPerPage > 100 {
		return shared.NewDomainError("INVALID_SETTING", "postsPerPage must be between 1 and 100")
	}
	if r.ShowSummary != "full" && r.ShowSummary != "excerpt" {
		return shared.NewDomainError("INVALID_SETTING", "showSummary must be full or excerpt")
	}
	if r.ExcerptLength < 10 || r.ExcerptLength > 1000 {
		return shared.NewDomainError("INVALID_SETTING", "excerptLength must be between 10 and 1000")
	}
	return nil
}

// MediaSettings is the typed form of the media section
type MediaSettings struct {
	MaxUploadSizeMB int      `json:"maxUploadSizeMb"`
	AllowedTypes    []string `json:"allowedTypes"`
	OrganizeByMonth bool     `json:"organizeByMonth"`
	ThumbnailWidth  int      `json:"thumbnailWidth"`
	ThumbnailHeight int      `json:"thumbnailHeight"`
}

// Repository persists settings documents
type Repository interface {
	FindBySection(ctx context.Context, tenantID uuid.UUID, section Section) (*Setting, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Setting, error)
	Save(ctx context.Context, setting *Setting) error
}
