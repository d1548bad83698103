package permalink

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RedirectRule maps an old path to its replacement
type RedirectRule struct {
	From       string `json:"from"`
	To         string `json:"to"`
	StatusCode int    `json:"statusCode"`
}

// RedirectRules compares the URLs every subject gets under two configurations
// and returns a permanent redirect for each one that moved.
func RedirectRules(oldSettings, newSettings Settings, subjects []Subject) []RedirectRule {
	rules := make([]RedirectRule, 0)
	seen := make(map[string]struct{})
	for _, subj := range subjects {
		from := Generate(oldSettings, subj)
		to := Generate(newSettings, subj)
		if from == to {
			continue
		}
		if _, dup := seen[from]; dup {
			continue
		}
		seen[from] = struct{}{}
		rules = append(rules, RedirectRule{From: from, To: to, StatusCode: http.StatusMovedPermanently})
	}
	return rules
}

// Redirect is a stored redirect served by the public content endpoint
type Redirect struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	Source     string
	Target     string
	StatusCode int
	Hits       int64
}

// NewRedirect validates and creates a redirect
func NewRedirect(tenantID uuid.UUID, source, target string, statusCode int) (*Redirect, error) {
	source = normalizeSource(source)
	if source == "" || target == "" {
		return nil, shared.NewDomainError("INVALID_REDIRECT", "Redirect source and target are required")
	}
	if source == normalizeSource(target) {
		return nil, shared.NewDomainError("INVALID_REDIRECT", "Redirect source and target must differ")
	}
	if statusCode != http.StatusMovedPermanently && statusCode != http.StatusFound &&
		statusCode != http.StatusTemporaryRedirect && statusCode != http.StatusPermanentRedirect {
		statusCode = http.StatusMovedPermanently
	}
	return &Redirect{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Source:     source,
		Target:     target,
		StatusCode: statusCode,
	}, nil
}

// normalizeSource makes lookups independent of the trailing slash
func normalizeSource(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// NormalizeSource is the key used to store and look up redirect sources
func NormalizeSource(path string) string {
	return normalizeSource(path)
}

// RedirectPlan is the set of changes needed to merge new rules into a table
type RedirectPlan struct {
	Create []*Redirect
	Update []*Redirect
	Remove []*Redirect
}

// IsEmpty reports whether nothing has to change
func (p RedirectPlan) IsEmpty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Remove) == 0
}

// PlanRedirects merges rules into the existing table without leaving chains
// or loops behind: a rule A->B retargets every X->A to X->B, drops any
// redirect whose source is B (B is live content again) and replaces A->*.
func PlanRedirects(tenantID uuid.UUID, existing []Redirect, rules []RedirectRule) RedirectPlan {
	table := make(map[string]*Redirect, len(existing))
	origTarget := make(map[string]string, len(existing))
	for i := range existing {
		r := &existing[i]
		table[r.Source] = r
		origTarget[r.Source] = r.Target
	}
	created := make(map[string]*Redirect)
	removed := make(map[string]*Redirect)

	for _, rule := range rules {
		from, to := normalizeSource(rule.From), rule.To
		if from == "" || from == normalizeSource(to) {
			continue
		}

		if live, ok := table[normalizeSource(to)]; ok {
			delete(table, live.Source)
			if _, isNew := created[live.Source]; isNew {
				delete(created, live.Source)
			} else {
				removed[live.Source] = live
			}
		}

		for src, r := range table {
			if normalizeSource(r.Target) == from {
				if src == normalizeSource(to) {
					continue
				}
				r.Target = to
			}
		}

		if r, ok := table[from]; ok {
			r.Target = to
			r.StatusCode = rule.StatusCode
			continue
		}
		r, err := NewRedirect(tenantID, from, to, rule.StatusCode)
		if err != nil {
			continue
		}
		table[from] = r
		created[from] = r
		delete(removed, from)
	}

	plan := RedirectPlan{}
	for src, r := range table {
		if _, isNew := created[src]; isNew {
			plan.Create = append(plan.Create, r)
			continue
		}
		if origTarget[src] != r.Target {
			r.Touch()
			plan.Update = append(plan.Update, r)
		}
	}
	for _, r := range removed {
		plan.Remove = append(plan.Remove, r)
	}
	return plan
}

// RedirectRepository persists redirects
type RedirectRepository interface {
	FindBySource(ctx context.Context, tenantID uuid.UUID, source string) (*Redirect, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Redirect, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// ListAll returns the complete table of a tenant, used for planning merges
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]Redirect, error)
	Save(ctx context.Context, redirect *Redirect) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	IncrementHits(ctx context.Context, tenantID, id uuid.UUID) error
}
