package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	identityapp "github.com/cmsplatform/backend/internal/application/identity"
	mediaapp "github.com/cmsplatform/backend/internal/application/media"
	permalinkapp "github.com/cmsplatform/backend/internal/application/permalink"
	settingsapp "github.com/cmsplatform/backend/internal/application/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/auth"
	"github.com/cmsplatform/backend/internal/infrastructure/cache"
	"github.com/cmsplatform/backend/internal/infrastructure/config"
	"github.com/cmsplatform/backend/internal/infrastructure/event"
	"github.com/cmsplatform/backend/internal/infrastructure/logger"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence"
	"github.com/cmsplatform/backend/internal/infrastructure/render"
	"github.com/cmsplatform/backend/internal/infrastructure/scheduler"
	"github.com/cmsplatform/backend/internal/infrastructure/storage"
	"github.com/cmsplatform/backend/internal/infrastructure/telemetry"
	"github.com/cmsplatform/backend/internal/interfaces/http/handler"
	"github.com/cmsplatform/backend/internal/interfaces/http/middleware"
	"github.com/cmsplatform/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/cmsplatform/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			CMS Platform API
//	@version		1.0
//	@description	Multi-tenant content management and affiliate API: posts, pages, taxonomies, permalinks, SEO, media and partner commissions.

//	@contact.name	API Support
//	@contact.url	https://github.com/cmsplatform/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log = providers.Logs.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting CMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentGORM(db.DB, telemetry.DBConfig{
		Tracing:            cfg.Telemetry.Enabled,
		LogFullSQL:         !cfg.App.IsProduction(),
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, providers.Meter.Meter("cms-backend/database"), log); err != nil {
		log.Warn("Database instrumentation unavailable", zap.Error(err))
	}
	log.Info("Database connected successfully")

	stores, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	// Repositories
	postRepo := persistence.NewGormPostRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	redirectRepo := persistence.NewGormRedirectRepository(db.DB)
	mediaRepo := persistence.NewGormMediaRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	linkRepo := persistence.NewGormPartnerLinkRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	earningsRepo := persistence.NewGormEarningsRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	contentMetrics, err := telemetry.NewContentMetrics(providers.Meter.Meter("cms-backend/content"))
	if err != nil {
		log.Warn("Content metrics unavailable", zap.Error(err))
	}

	// Application services
	postService := contentapp.NewPostService(postRepo, categoryRepo, tagRepo, db, render.New(cfg.Content.ExcerptLength))
	postService.SetContentMetrics(contentMetrics)
	categoryService := contentapp.NewCategoryService(categoryRepo, postRepo)
	tagService := contentapp.NewTagService(tagRepo, postRepo)

	settingsService := settingsapp.NewService(settingRepo, stores.Settings, postRepo)
	permalinkService := permalinkapp.NewService(settingsService, postRepo, categoryRepo, tagRepo, userRepo, redirectRepo, db, log)

	partnerService := affiliateapp.NewPartnerService(partnerRepo)
	linkService := affiliateapp.NewLinkService(linkRepo, partnerRepo, stores.Dedup, cfg.Content.ClickDedupWindow)
	commissionService := affiliateapp.NewCommissionService(commissionRepo, partnerRepo, linkRepo, db)
	commissionService.SetContentMetrics(contentMetrics)
	earningsService := affiliateapp.NewEarningsService(earningsRepo, commissionRepo, partnerRepo, linkRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if stores.Client != nil {
		blacklist = auth.NewRedisTokenBlacklist(stores.Client)
	}
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, log)

	objectStorage := newObjectStorage(ctx, cfg, log)
	mediaService := mediaapp.NewService(mediaRepo, objectStorage, log)
	mediaService.SetConfig(mediaapp.Config{
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
		DownloadURLExpiry: cfg.Storage.PresignExpiration,
		MaxUploadSize:     cfg.Storage.MaxUploadSize,
		AllowedTypes:      cfg.Storage.AllowedTypes,
	})

	// Event bus: slug changes create redirects, settings changes evict the cache
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(permalinkapp.NewSlugRedirectHandler(permalinkService, log))
	eventBus.Subscribe(settingsapp.NewCacheInvalidationHandler(stores.Settings, log))

	if cfg.Event.KafkaEnabled {
		var idempotent *event.IdempotentHandler
		forwarder := event.NewKafkaForwarder(event.NewKafkaWriter(cfg.Event), cfg.Event.KafkaTopic, log,
			event.WithDeliveryFailure(func(ctx context.Context, e shared.DomainEvent) {
				idempotent.Release(ctx, e)
			}))
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		idempotent = event.NewIdempotentHandler(forwarder, stores.Dedup, 24*time.Hour, log)
		eventBus.Subscribe(idempotent)
		log.Info("Kafka forwarding enabled",
			zap.Strings("brokers", cfg.Event.KafkaBrokers),
			zap.String("topic", cfg.Event.KafkaTopic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	postService.SetEventPublisher(eventBus)
	partnerService.SetEventPublisher(eventBus)
	settingsService.SetEventPublisher(eventBus)
	commissionService.SetEventPublisher(eventBus)

	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, tenantRepo, log)
		if err := jobs.Register(cfg.Scheduler.PublishSpec, scheduler.NewPublishScheduledPostsJob(postService)); err != nil {
			log.Fatal("Invalid publish schedule", zap.Error(err))
		}
		if err := jobs.Register(cfg.Scheduler.EarningsSpec, scheduler.NewRollupEarningsJob(earningsService)); err != nil {
			log.Fatal("Invalid earnings schedule", zap.Error(err))
		}
		jobs.Start()
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.String("publish_spec", cfg.Scheduler.PublishSpec),
			zap.String("earnings_spec", cfg.Scheduler.EarningsSpec),
		)
	}

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version).
		AddCheck("database", db.Ping)
	if stores.Client != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error {
			return stores.Client.Ping(ctx).Err()
		})
	}
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Posts:       handler.NewPostHandler(postService),
		Pages:       handler.NewPageHandler(postService),
		Categories:  handler.NewCategoryHandler(categoryService),
		Tags:        handler.NewTagHandler(tagService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Permalinks:  handler.NewPermalinkHandler(permalinkService),
		Partners:    handler.NewPartnerHandler(partnerService, commissionService, earningsService),
		Links:       handler.NewLinkHandler(linkService),
		Commissions: handler.NewCommissionHandler(commissionService, earningsService),
		Media:       handler.NewMediaHandler(mediaService),
		System:      systemHandler,
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request ID, recovery, tracing, request log, metrics, security
	// headers, CORS, body limit, rate limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: providers.Meter,
		Enabled:       cfg.Telemetry.MetricsEnabled,
		Logger:        log,
	}))
	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.HTTP.HSTSEnabled
	securityConfig.HSTSMaxAge = cfg.HTTP.HSTSMaxAge
	if cfg.HTTP.CSPDirective != "" {
		securityConfig.CSPDirective = cfg.HTTP.CSPDirective
	}
	engine.Use(middleware.SecureWithConfig(securityConfig))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		var limiter middleware.Limiter
		if stores.Client != nil {
			limiter = middleware.NewRedisRateLimiter(stores.Client, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		} else {
			memLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
			defer memLimiter.Stop()
			limiter = memLimiter
		}
		engine.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	r := router.NewRouter(engine, router.WithMirror("/api"))
	openPaths, openPrefixes := router.OpenPaths(r.Prefixes())

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, openPaths...)
	jwtConfig.SkipPathPrefixes = append(jwtConfig.SkipPathPrefixes, openPrefixes...)
	jwtConfig.Logger = log
	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.SkipPaths = append(tenantConfig.SkipPaths, openPaths...)
	tenantConfig.Validator = middleware.NewTenantRepositoryValidator(tenantRepo)
	tenantConfig.Logger = log
	if cfg.App.IsProduction() {
		handler.SetFallbackTenant("")
	} else {
		tenantConfig.DefaultTenant = middleware.DevelopmentTenantID
	}

	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = cfg.Telemetry.ProfilingEnabled

	r.Use(jwtMiddleware, middleware.TenantMiddlewareWithConfig(tenantConfig), middleware.ProfilingWithConfig(profilingConfig))
	router.RegisterCMS(engine, r, handlers)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.App.IsProduction(),
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newObjectStorage uses S3 when a bucket or endpoint is configured and falls
// back to process memory for local development
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) mediaapp.ObjectStorage {
	if cfg.Storage.Bucket == "" && cfg.Storage.Endpoint == "" {
		log.Warn("Object storage not configured, media is kept in memory")
		return storage.NewMemoryObjectStorage()
	}
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Warn("Bucket check failed", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}
	return s3Storage
}
