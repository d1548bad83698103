package main

import (
	"context"
	"fmt"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/cmsplatform/backend/internal/infrastructure/cache"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence"
	"github.com/cmsplatform/backend/internal/infrastructure/render"
	"github.com/cmsplatform/backend/internal/infrastructure/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo tenant with an admin and sample content",
	Long: `Create a demo tenant with an admin and sample content.

The tenant and admin are reused when they already exist, so running seed twice
adds a second batch of content to the same tenant.`,
	Example: `  cmsctl seed
  cmsctl seed --tenant acme --posts 100 --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() {
			_ = log.Sync()
		}()

		db, err := persistence.NewDatabase(&cfg.Database, log, logLevel)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		postRepo := persistence.NewGormPostRepository(db.DB)
		categoryRepo := persistence.NewGormCategoryRepository(db.DB)
		tagRepo := persistence.NewGormTagRepository(db.DB)
		partnerRepo := persistence.NewGormPartnerRepository(db.DB)
		linkRepo := persistence.NewGormPartnerLinkRepository(db.DB)

		seeder := seed.New(
			persistence.NewGormTenantRepository(db.DB),
			persistence.NewGormUserRepository(db.DB),
			seed.Services{
				Categories:  contentapp.NewCategoryService(categoryRepo, postRepo),
				Tags:        contentapp.NewTagService(tagRepo, postRepo),
				Posts:       contentapp.NewPostService(postRepo, categoryRepo, tagRepo, db, render.New(cfg.Content.ExcerptLength)),
				Partners:    affiliateapp.NewPartnerService(partnerRepo),
				Links:       affiliateapp.NewLinkService(linkRepo, partnerRepo, cache.NewInMemoryDedupStore(), cfg.Content.ClickDedupWindow),
				Commissions: affiliateapp.NewCommissionService(persistence.NewGormCommissionRepository(db.DB), partnerRepo, linkRepo, db),
			},
			log,
		)

		result, err := seeder.Run(context.Background(), seedOpts)
		if err != nil {
			return err
		}
		log.Info("Demo tenant ready",
			zap.String("tenant_id", result.TenantID.String()),
			zap.String("admin", seedOpts.AdminUsername),
		)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedOpts.TenantCode, "tenant", seedOpts.TenantCode, "Tenant code")
	f.StringVar(&seedOpts.TenantName, "tenant-name", seedOpts.TenantName, "Tenant display name")
	f.StringVar(&seedOpts.TenantDomain, "domain", seedOpts.TenantDomain, "Tenant domain")
	f.StringVar(&seedOpts.AdminUsername, "admin", seedOpts.AdminUsername, "Admin username")
	f.StringVar(&seedOpts.AdminEmail, "admin-email", seedOpts.AdminEmail, "Admin email")
	f.StringVar(&seedOpts.AdminPassword, "admin-password", seedOpts.AdminPassword, "Admin password")
	f.IntVar(&seedOpts.Categories, "categories", seedOpts.Categories, "Categories to create")
	f.IntVar(&seedOpts.Tags, "tags", seedOpts.Tags, "Tags to create")
	f.IntVar(&seedOpts.Posts, "posts", seedOpts.Posts, "Posts to create")
	f.IntVar(&seedOpts.Pages, "pages", seedOpts.Pages, "Pages to create")
	f.IntVar(&seedOpts.Partners, "partners", seedOpts.Partners, "Partners to create, each with a link and two conversions")
	f.Int64Var(&seedOpts.Seed, "seed", 0, "Random seed for reproducible data (0 = random)")
}
