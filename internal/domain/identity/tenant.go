package identity

import (
	"context"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is a site operated on the platform. All content is scoped to one.
type Tenant struct {
	shared.BaseAggregateRoot
	Code   valueobject.Slug
	Name   string
	Domain string
	Status TenantStatus
}

// NewTenant creates an active tenant
func NewTenant(code, name, domain string) (*Tenant, error) {
	slug, err := valueobject.ParseSlug(strings.ToLower(code))
	if err != nil {
		return nil, shared.WrapDomainError("INVALID_CODE", "Tenant code must be a slug", err)
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              slug,
		Name:              strings.TrimSpace(name),
		Domain:            strings.ToLower(strings.TrimSpace(domain)),
		Status:            TenantStatusActive,
	}, nil
}

// IsActive returns true if the tenant can be served
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Suspend stops serving the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already suspended")
	}
	t.Status = TenantStatusSuspended
	t.IncrementVersion()
	return nil
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	// FindActiveIDs returns ids of every active tenant, used by scheduled jobs
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Save(ctx context.Context, tenant *Tenant) error
}
