// Package seed fills a tenant with demo content for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/identity"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CategoryCreator creates categories
type CategoryCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error)
}

// TagCreator creates tags
type TagCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateTagRequest) (*contentapp.TagResponse, error)
}

// PostCreator creates posts and pages
type PostCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreatePostRequest) (*contentapp.PostResponse, error)
}

// PartnerCreator creates affiliate partners
type PartnerCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error)
}

// LinkCreator creates partner links
type LinkCreator interface {
	Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error)
}

// ConversionRecorder records partner conversions
type ConversionRecorder interface {
	RecordConversion(ctx context.Context, tenantID, partnerID uuid.UUID, req affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error)
}

// Services are the use cases the seeder drives. Content goes through the
// application layer so slugs, rendering and events behave as in production.
type Services struct {
	Categories  CategoryCreator
	Tags        TagCreator
	Posts       PostCreator
	Partners    PartnerCreator
	Links       LinkCreator
	Commissions ConversionRecorder
}

// Options sizes the generated data set
type Options struct {
	TenantCode    string
	TenantName    string
	TenantDomain  string
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	Categories    int
	Tags          int
	Posts         int
	Pages         int
	Partners      int
	// Seed makes runs reproducible; zero picks a random seed
	Seed int64
}

// DefaultOptions returns a small demo data set
func DefaultOptions() Options {
	return Options{
		TenantCode:    "demo",
		TenantName:    "Demo Blog",
		TenantDomain:  "demo.localhost",
		AdminUsername: "admin",
		AdminEmail:    "admin@demo.localhost",
		AdminPassword: "admin12345",
		Categories:    5,
		Tags:          10,
		Posts:         25,
		Pages:         3,
		Partners:      3,
	}
}

// Result counts what a run created
type Result struct {
	TenantID    uuid.UUID
	AdminID     uuid.UUID
	Categories  int
	Tags        int
	Posts       int
	Pages       int
	Partners    int
	Links       int
	Commissions int
}

// Seeder generates demo data
type Seeder struct {
	tenants  identity.TenantRepository
	users    identity.UserRepository
	services Services
	logger   *zap.Logger
}

// New creates a Seeder
func New(tenants identity.TenantRepository, users identity.UserRepository, services Services, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		tenants:  tenants,
		users:    users,
		services: services,
		logger:   logger,
	}
}

// Run ensures the tenant and its admin exist, then adds the configured
// amount of content. Tenant and admin are reused when present.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	faker := gofakeit.New(opts.Seed)

	tenant, err := s.ensureTenant(ctx, opts)
	if err != nil {
		return nil, err
	}
	admin, err := s.ensureAdmin(ctx, tenant.ID, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{TenantID: tenant.ID, AdminID: admin.ID}

	categoryIDs := make([]uuid.UUID, 0, opts.Categories)
	for i := 0; i < opts.Categories; i++ {
		resp, err := s.services.Categories.Create(ctx, tenant.ID, contentapp.CreateCategoryRequest{
			Name:        fmt.Sprintf("%s %d", faker.BuzzWord(), i+1),
			Description: faker.Sentence(10),
			SortOrder:   i,
			CreatedBy:   &admin.ID,
		})
		if err != nil {
			return result, fmt.Errorf("seed category: %w", err)
		}
		categoryIDs = append(categoryIDs, resp.ID)
		result.Categories++
	}

	tagIDs := make([]uuid.UUID, 0, opts.Tags)
	for i := 0; i < opts.Tags; i++ {
		resp, err := s.services.Tags.Create(ctx, tenant.ID, contentapp.CreateTagRequest{
			Name:      fmt.Sprintf("%s %d", faker.Word(), i+1),
			Color:     faker.HexColor(),
			CreatedBy: &admin.ID,
		})
		if err != nil {
			return result, fmt.Errorf("seed tag: %w", err)
		}
		tagIDs = append(tagIDs, resp.ID)
		result.Tags++
	}

	for i := 0; i < opts.Posts; i++ {
		req := contentapp.CreatePostRequest{
			Title:    faker.Sentence(6),
			Content:  markdownBody(faker),
			Format:   string(content.FormatMarkdown),
			Status:   postStatus(i),
			Type:     content.PostTypePost,
			AuthorID: &admin.ID,
		}
		if len(categoryIDs) > 0 {
			req.CategoryIDs = []uuid.UUID{categoryIDs[i%len(categoryIDs)]}
		}
		if len(tagIDs) > 0 {
			req.TagIDs = []uuid.UUID{tagIDs[i%len(tagIDs)], tagIDs[(i+3)%len(tagIDs)]}
			if req.TagIDs[0] == req.TagIDs[1] {
				req.TagIDs = req.TagIDs[:1]
			}
		}
		if _, err := s.services.Posts.Create(ctx, tenant.ID, req); err != nil {
			return result, fmt.Errorf("seed post: %w", err)
		}
		result.Posts++
	}

	for i := 0; i < opts.Pages; i++ {
		if _, err := s.services.Posts.Create(ctx, tenant.ID, contentapp.CreatePostRequest{
			Title:     fmt.Sprintf("%s %d", faker.HipsterWord(), i+1),
			Content:   markdownBody(faker),
			Format:    string(content.FormatMarkdown),
			Status:    string(content.PostStatusPublish),
			MenuOrder: i,
			Type:      content.PostTypePage,
			AuthorID:  &admin.ID,
		}); err != nil {
			return result, fmt.Errorf("seed page: %w", err)
		}
		result.Pages++
	}

	for i := 0; i < opts.Partners; i++ {
		if err := s.seedPartner(ctx, faker, tenant.ID, &admin.ID, i, result); err != nil {
			return result, err
		}
	}

	s.logger.Info("Seed completed",
		zap.String("tenant", opts.TenantCode),
		zap.Int("categories", result.Categories),
		zap.Int("tags", result.Tags),
		zap.Int("posts", result.Posts),
		zap.Int("pages", result.Pages),
		zap.Int("partners", result.Partners),
		zap.Int("commissions", result.Commissions),
	)
	return result, nil
}

// seedPartner creates an active partner with one link and two conversions
func (s *Seeder) seedPartner(ctx context.Context, faker *gofakeit.Faker, tenantID uuid.UUID, createdBy *uuid.UUID, i int, result *Result) error {
	partner, err := s.services.Partners.Create(ctx, tenantID, affiliateapp.CreatePartnerRequest{
		Name:      faker.Company(),
		Email:     fmt.Sprintf("partner%d@%s", i+1, faker.DomainName()),
		Website:   faker.URL(),
		Activate:  true,
		CreatedBy: createdBy,
	})
	if err != nil {
		return fmt.Errorf("seed partner: %w", err)
	}
	result.Partners++

	link, err := s.services.Links.Create(ctx, tenantID, affiliateapp.CreateLinkRequest{
		PartnerID: partner.ID,
		Name:      faker.ProductName(),
		TargetURL: faker.URL(),
	})
	if err != nil {
		return fmt.Errorf("seed partner link: %w", err)
	}
	result.Links++

	for n := 0; n < 2; n++ {
		if _, err := s.services.Commissions.RecordConversion(ctx, tenantID, partner.ID, affiliateapp.RecordConversionRequest{
			OrderID:     fmt.Sprintf("SEED-%03d-%02d", i+1, n+1),
			OrderAmount: decimal.NewFromFloat(faker.Price(20, 500)).Round(2),
			Currency:    "USD",
			LinkID:      &link.ID,
		}); err != nil {
			return fmt.Errorf("seed conversion: %w", err)
		}
		result.Commissions++
	}
	return nil
}

func (s *Seeder) ensureTenant(ctx context.Context, opts Options) (*identity.Tenant, error) {
	tenant, err := s.tenants.FindByCode(ctx, opts.TenantCode)
	if err == nil {
		s.logger.Info("Reusing tenant", zap.String("code", opts.TenantCode))
		return tenant, nil
	}
	if !shared.IsNotFound(err) {
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	tenant, err = identity.NewTenant(opts.TenantCode, opts.TenantName, opts.TenantDomain)
	if err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("save tenant: %w", err)
	}
	return tenant, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, tenantID uuid.UUID, opts Options) (*identity.User, error) {
	user, err := s.users.FindByUsername(ctx, tenantID, opts.AdminUsername)
	if err == nil {
		return user, nil
	}
	if !shared.IsNotFound(err) {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	user, err = identity.NewUser(tenantID, opts.AdminUsername, opts.AdminEmail, opts.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save admin: %w", err)
	}
	return user, nil
}

// postStatus spreads posts over the editorial states, mostly published
func postStatus(i int) string {
	switch i % 5 {
	case 3:
		return string(content.PostStatusDraft)
	case 4:
		return string(content.PostStatusPending)
	default:
		return string(content.PostStatusPublish)
	}
}

func markdownBody(faker *gofakeit.Faker) string {
	return "## " + faker.Sentence(4) + "\n\n" +
		faker.Paragraph(2, 4, 12, "\n\n") + "\n\n" +
		"- " + faker.Sentence(5) + "\n- " + faker.Sentence(5) + "\n"
}
