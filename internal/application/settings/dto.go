package settings

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/google/uuid"
)

// SettingResponse is the effective document of one section
type SettingResponse struct {
	Section   string          `json:"section"`
	Values    settings.Values `json:"values"`
	UpdatedBy *uuid.UUID      `json:"updated_by,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// UpdateSettingRequest carries a partial document; keys not present are kept
type UpdateSettingRequest struct {
	Values    settings.Values `json:"values" binding:"required"`
	UpdatedBy uuid.UUID       `json:"-"`
}

// Homepage validation failure reasons
const (
	HomepageMissingPageID    = "missing_page_id"
	HomepagePageNotFound     = "page_not_found"
	HomepagePageNotPublished = "page_not_published"
)

// HomepageResponse tells the front end what to render at the site root.
// Type and PageID are the stored settings; EffectiveType falls back to
// latest_posts when the configured static page cannot be shown.
type HomepageResponse struct {
	Type             string     `json:"type"`
	PageID           *uuid.UUID `json:"pageId"`
	PostsPageID      *uuid.UUID `json:"postsPageId,omitempty"`
	PostsPerPage     int        `json:"postsPerPage"`
	EffectiveType    string     `json:"effectiveType"`
	ValidationFailed bool       `json:"validationFailed"`
	Reason           string     `json:"reason,omitempty"`
}

func toResponse(s *settings.Setting, values settings.Values) *SettingResponse {
	resp := &SettingResponse{
		Section: string(s.Section),
		Values:  values,
	}
	if !s.UpdatedAt.IsZero() && len(s.Values) > 0 {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
		resp.UpdatedBy = s.UpdatedBy
	}
	return resp
}
