package permalink

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/google/uuid"
)

// SettingsResponse wraps the permalink settings with their validation state
type SettingsResponse struct {
	Settings permalink.Settings `json:"settings"`
	Warnings []string           `json:"warnings"`
}

// UpdateSettingsRequest replaces the permalink settings. UpdatedBy is set by the handler.
type UpdateSettingsRequest struct {
	permalink.Settings
	UpdatedBy uuid.UUID `json:"-"`
}

// UpdateSettingsResponse reports what the update did
type UpdateSettingsResponse struct {
	Settings         permalink.Settings       `json:"settings"`
	Warnings         []string                 `json:"warnings"`
	StructureChanged bool                     `json:"structureChanged"`
	Redirects        []permalink.RedirectRule `json:"redirects"`
	RedirectsCreated int                      `json:"redirectsCreated"`
	RedirectsUpdated int                      `json:"redirectsUpdated"`
	RedirectsRemoved int                      `json:"redirectsRemoved"`
}

// PreviewRequest previews a structure
type PreviewRequest struct {
	Structure string `json:"structure"`
}

// ValidateRequest validates a structure
type ValidateRequest struct {
	Structure string `json:"structure" binding:"required"`
}

// ResolveRequest resolves a public path
type ResolveRequest struct {
	Path string `json:"path" binding:"required"`
}

// AnalyzeRequest scores a URL
type AnalyzeRequest struct {
	URL          string `json:"url" binding:"required"`
	FocusKeyword string `json:"focusKeyword"`
}

// Resolution kinds
const (
	ResolvedPost     = "post"
	ResolvedPage     = "page"
	ResolvedCategory = "category"
	ResolvedTag      = "tag"
	ResolvedRedirect = "redirect"
)

// ResolvedContent is the content a path points at
type ResolvedContent struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	Format      string     `json:"format,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Canonical   string     `json:"canonical"`
}

// ResolveResponse is the outcome of resolving a path
type ResolveResponse struct {
	Path       string           `json:"path"`
	Kind       string           `json:"kind"`
	Match      *permalink.Match `json:"match,omitempty"`
	RedirectTo string           `json:"redirectTo,omitempty"`
	StatusCode int              `json:"statusCode,omitempty"`
	Content    *ResolvedContent `json:"content,omitempty"`
}

// RedirectResponse is a stored redirect
type RedirectResponse struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	StatusCode int       `json:"statusCode"`
	Hits       int64     `json:"hits"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToRedirectResponse converts a domain redirect
func ToRedirectResponse(r *permalink.Redirect) RedirectResponse {
	return RedirectResponse{
		ID:         r.ID,
		Source:     r.Source,
		Target:     r.Target,
		StatusCode: r.StatusCode,
		Hits:       r.Hits,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// RedirectListFilter holds redirect list parameters
type RedirectListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// PostSEOResponse is the SEO analysis of a post's permalink
type PostSEOResponse struct {
	PostID       uuid.UUID          `json:"postId"`
	URL          string             `json:"url"`
	FocusKeyword string             `json:"focusKeyword,omitempty"`
	Analysis     permalink.Analysis `json:"analysis"`
}
