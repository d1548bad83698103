package router

import (
	"github.com/cmsplatform/backend/internal/interfaces/http/handler"
	"github.com/cmsplatform/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers mounted by CMSGroups
type Handlers struct {
	Auth        *handler.AuthHandler
	Posts       *handler.PostHandler
	Pages       *handler.PostHandler
	Categories  *handler.CategoryHandler
	Tags        *handler.TagHandler
	Settings    *handler.SettingsHandler
	Permalinks  *handler.PermalinkHandler
	Partners    *handler.PartnerHandler
	Links       *handler.LinkHandler
	Commissions *handler.CommissionHandler
	Media       *handler.MediaHandler
	System      *handler.SystemHandler
}

// CMSGroups returns the API route groups. Authentication and tenant resolution
// come from the Router's middleware; role gates are attached here.
func CMSGroups(h Handlers) []*DomainGroup {
	writers := middleware.RequireWriteRole(middleware.ContentWriters...)
	admin := middleware.RequireRole(middleware.RoleAdmin)
	adminWrites := middleware.RequireWriteRole(middleware.RoleAdmin)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.RefreshToken)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.GetCurrentUser)
	authRoutes.PUT("/password", h.Auth.ChangePassword)

	postRoutes := NewDomainGroup("posts", "/posts").Use(writers)
	postRoutes.POST("", h.Posts.Create)
	postRoutes.GET("", h.Posts.List)
	postRoutes.GET("/:id", h.Posts.Get)
	postRoutes.PUT("/:id", h.Posts.Update)
	postRoutes.DELETE("/:id", h.Posts.Delete)
	postRoutes.DELETE("/:id/permanent", h.Posts.DeletePermanently)
	postRoutes.POST("/:id/publish", h.Posts.Publish)
	postRoutes.POST("/:id/unpublish", h.Posts.Unpublish)
	postRoutes.POST("/:id/restore", h.Posts.Restore)
	postRoutes.PUT("/:id/categories", h.Posts.SetCategories)
	postRoutes.PUT("/:id/tags", h.Posts.SetTags)
	postRoutes.GET("/:id/seo", h.Permalinks.PostSEO)

	pageRoutes := NewDomainGroup("pages", "/pages").Use(writers)
	pageRoutes.POST("", h.Pages.Create)
	pageRoutes.GET("", h.Pages.List)
	pageRoutes.GET("/:id", h.Pages.Get)
	pageRoutes.PUT("/:id", h.Pages.Update)
	pageRoutes.DELETE("/:id", h.Pages.Delete)
	pageRoutes.DELETE("/:id/permanent", h.Pages.DeletePermanently)
	pageRoutes.POST("/:id/publish", h.Pages.Publish)
	pageRoutes.POST("/:id/unpublish", h.Pages.Unpublish)
	pageRoutes.POST("/:id/restore", h.Pages.Restore)

	categoryRoutes := NewDomainGroup("categories", "/categories").Use(writers)
	categoryRoutes.POST("", h.Categories.Create)
	categoryRoutes.GET("", h.Categories.List)
	categoryRoutes.GET("/:id", h.Categories.Get)
	categoryRoutes.PUT("/:id", h.Categories.Update)
	categoryRoutes.DELETE("/:id", h.Categories.Delete)

	tagRoutes := NewDomainGroup("tags", "/tags").Use(writers)
	tagRoutes.POST("", h.Tags.Create)
	tagRoutes.GET("", h.Tags.List)
	tagRoutes.GET("/:id", h.Tags.Get)
	tagRoutes.PUT("/:id", h.Tags.Update)
	tagRoutes.DELETE("/:id", h.Tags.Delete)

	settingsRoutes := NewDomainGroup("settings", "/settings").Use(adminWrites)
	settingsRoutes.GET("", h.Settings.GetAll)
	settingsRoutes.GET("/homepage", h.Settings.Homepage)
	settingsRoutes.POST("/reset/:section", h.Settings.Reset)
	settingsRoutes.GET("/permalink", h.Permalinks.GetSettings)
	settingsRoutes.PUT("/permalink", h.Permalinks.UpdateSettings)
	settingsRoutes.POST("/permalink/preview", h.Permalinks.Preview)
	settingsRoutes.POST("/permalink/validate", h.Permalinks.Validate)
	settingsRoutes.GET("/:section", h.Settings.Get)
	settingsRoutes.PUT("/:section", h.Settings.Update)

	permalinkRoutes := NewDomainGroup("permalinks", "/permalinks")
	permalinkRoutes.GET("/presets", h.Permalinks.Presets)
	permalinkRoutes.POST("/resolve", h.Permalinks.Resolve)
	permalinkRoutes.POST("/seo", h.Permalinks.Analyze)

	redirectRoutes := NewDomainGroup("redirects", "/redirects")
	redirectRoutes.GET("", h.Permalinks.ListRedirects)

	partnerRoutes := NewDomainGroup("partners", "/partners").Use(admin)
	partnerRoutes.POST("", h.Partners.Create)
	partnerRoutes.GET("", h.Partners.List)
	partnerRoutes.GET("/:id", h.Partners.Get)
	partnerRoutes.PUT("/:id", h.Partners.Update)
	partnerRoutes.DELETE("/:id", h.Partners.Delete)
	partnerRoutes.GET("/:id/earnings", h.Partners.Earnings)
	partnerRoutes.POST("/:id/conversions", h.Partners.RecordConversion)

	linkRoutes := NewDomainGroup("partner-links", "/partner-links").Use(admin)
	linkRoutes.POST("", h.Links.Create)
	linkRoutes.GET("", h.Links.List)
	linkRoutes.GET("/:id", h.Links.Get)
	linkRoutes.PUT("/:id", h.Links.Update)
	linkRoutes.DELETE("/:id", h.Links.Delete)

	commissionRoutes := NewDomainGroup("commissions", "/commissions").Use(admin)
	commissionRoutes.GET("", h.Commissions.List)
	commissionRoutes.GET("/:id", h.Commissions.Get)
	commissionRoutes.POST("/:id/approve", h.Commissions.Approve)
	commissionRoutes.POST("/:id/reject", h.Commissions.Reject)
	commissionRoutes.POST("/:id/pay", h.Commissions.Pay)
	commissionRoutes.POST("/:id/cancel", h.Commissions.Cancel)

	earningsRoutes := NewDomainGroup("earnings", "/earnings").Use(admin)
	earningsRoutes.GET("", h.Commissions.EarningsSummary)

	mediaRoutes := NewDomainGroup("media", "/media").Use(writers)
	mediaRoutes.POST("", h.Media.CreateUpload)
	mediaRoutes.GET("", h.Media.List)
	mediaRoutes.GET("/:id", h.Media.Get)
	mediaRoutes.PUT("/:id", h.Media.Update)
	mediaRoutes.POST("/:id/confirm", h.Media.Confirm)
	mediaRoutes.GET("/:id/download", h.Media.Download)
	mediaRoutes.DELETE("/:id", h.Media.Delete)

	publicRoutes := NewDomainGroup("public", "/public")
	publicRoutes.GET("/permalink-settings", h.Permalinks.PublicSettings)
	publicRoutes.GET("/content", h.Permalinks.PublicContent)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", h.System.Ping)
	systemRoutes.GET("/info", h.System.GetSystemInfo)

	return []*DomainGroup{
		authRoutes,
		postRoutes,
		pageRoutes,
		categoryRoutes,
		tagRoutes,
		settingsRoutes,
		permalinkRoutes,
		redirectRoutes,
		partnerRoutes,
		linkRoutes,
		commissionRoutes,
		earningsRoutes,
		mediaRoutes,
		publicRoutes,
		systemRoutes,
	}
}

// RegisterCMS mounts the API groups on r and the unversioned routes (health,
// affiliate redirects) directly on the engine
func RegisterCMS(engine *gin.Engine, r *Router, h Handlers) {
	for _, group := range CMSGroups(h) {
		r.Register(group)
	}
	r.Setup()

	engine.GET("/health", h.System.Health)
	engine.GET("/r/:code", h.Links.Follow)
}

// OpenPaths lists the API paths served without a token (exact) and the path
// prefixes served without one, for every mounted prefix
func OpenPaths(prefixes []string) (paths, pathPrefixes []string) {
	for _, prefix := range prefixes {
		paths = append(paths,
			prefix+"/auth/login",
			prefix+"/auth/refresh",
			prefix+"/system/ping",
			prefix+"/system/info",
			prefix+"/settings/homepage",
		)
		pathPrefixes = append(pathPrefixes, prefix+"/public/")
	}
	return paths, pathPrefixes
}
