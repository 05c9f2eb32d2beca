package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/api/handlers"
	"github.com/moizhassan7/crisp-cms/internal/api/middleware"
	"github.com/moizhassan7/crisp-cms/internal/config"
	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/services"
	"github.com/moizhassan7/crisp-cms/internal/store"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

// Router wires the HTTP surface: the public site API, the session-gated
// admin API, and the ops endpoints. All dependencies come in through
// NewRouter; nothing here reaches for globals.
type Router struct {
	engine  *gin.Engine
	logger  *zap.Logger
	metrics *metrics.Collector

	authHandler    *handlers.AuthHandler
	publicHandler  *handlers.PublicHandler
	aboutHandler   *handlers.SingletonHandler[content.AboutContent]
	serviceHandler *handlers.ContentHandler[content.Service]
	projectHandler *handlers.ContentHandler[content.Project]
	pricingHandler *handlers.ContentHandler[content.PricingPlan]
	teamHandler    *handlers.ContentHandler[content.TeamMember]
	galleryHandler *handlers.ContentHandler[content.GalleryImage]
	draftHandler   *handlers.DraftHandler
	uploadHandler  *handlers.UploadHandler
	iconHandler    *handlers.IconHandler
	authMiddleware *middleware.AuthMiddleware
	uploadsRoot    string
}

// Deps carries everything the router needs from bootstrap.
type Deps struct {
	Config  *config.Configuration
	Store   store.Store
	Auth    *services.AuthService
	Uploads *services.UploadService
	Logger  *zap.Logger
	Metrics *metrics.Collector
}

func NewRouter(deps Deps) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	reqMiddleware := middleware.NewRequestMiddleware(deps.Logger, deps.Metrics)
	engine.Use(reqMiddleware.ProcessRequest())
	engine.Use(reqMiddleware.RecoverPanic())

	about := content.NewController(content.AboutResource(), deps.Store, deps.Logger, deps.Metrics)
	service := content.NewController(content.ServiceResource(), deps.Store, deps.Logger, deps.Metrics)
	project := content.NewController(content.ProjectResource(), deps.Store, deps.Logger, deps.Metrics)
	pricing := content.NewController(content.PricingPlanResource(), deps.Store, deps.Logger, deps.Metrics)
	team := content.NewController(content.TeamMemberResource(), deps.Store, deps.Logger, deps.Metrics)
	gallery := content.NewController(content.GalleryImageResource(), deps.Store, deps.Logger, deps.Metrics)

	drafts := content.NewDrafts([]content.DraftResource{
		content.AsDraftResource(about),
		content.AsDraftResource(service),
		content.AsDraftResource(project),
		content.AsDraftResource(pricing),
		content.AsDraftResource(team),
		content.AsDraftResource(gallery),
	}, deps.Config.Auth.SessionTimeout, deps.Logger)

	uploadsRoot := ""
	if deps.Config.ObjectStore.Type == "filesystem" {
		uploadsRoot = deps.Config.ObjectStore.FSRoot
	}

	return &Router{
		engine:  engine,
		logger:  deps.Logger,
		metrics: deps.Metrics,

		authHandler: handlers.NewAuthHandler(deps.Auth, deps.Config.Auth.CookieName,
			int(deps.Config.Auth.SessionTimeout.Seconds()), deps.Logger),
		publicHandler: handlers.NewPublicHandler(about, service, project, pricing, team, gallery,
			deps.Config.Contact, deps.Logger),
		aboutHandler:   handlers.NewSingletonHandler(about, deps.Logger),
		serviceHandler: handlers.NewContentHandler(service, deps.Logger),
		projectHandler: handlers.NewContentHandler(project, deps.Logger),
		pricingHandler: handlers.NewContentHandler(pricing, deps.Logger),
		teamHandler:    handlers.NewContentHandler(team, deps.Logger),
		galleryHandler: handlers.NewContentHandler(gallery, deps.Logger),
		draftHandler:   handlers.NewDraftHandler(drafts, deps.Logger),
		uploadHandler:  handlers.NewUploadHandler(deps.Uploads, deps.Logger),
		iconHandler:    handlers.NewIconHandler(),
		authMiddleware: middleware.NewAuthMiddleware(deps.Auth, deps.Config.Auth.CookieName),
		uploadsRoot:    uploadsRoot,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up", "name": "crisp-cms"})
	})

	r.engine.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"counters":  r.metrics.Counters(),
			"latencies": r.metrics.Latencies(),
			"sizes":     r.metrics.Sizes(),
		})
	})

	if r.uploadsRoot != "" {
		r.engine.Static("/uploads", r.uploadsRoot)
	}

	site := r.engine.Group("/api/site")
	{
		site.GET("/home", r.publicHandler.Home)
		site.GET("/about", r.publicHandler.About)
		site.GET("/services", r.publicHandler.Services)
		site.GET("/projects", r.publicHandler.Projects)
		site.GET("/pricing", r.publicHandler.Pricing)
		site.GET("/team", r.publicHandler.Team)
		site.GET("/gallery", r.publicHandler.Gallery)
	}

	auth := r.engine.Group("/api/auth")
	{
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/logout", r.authHandler.Logout)
		auth.GET("/session", r.authHandler.Session)
	}

	r.engine.GET("/api/icons", r.iconHandler.List)

	admin := r.engine.Group("/api/admin")
	admin.Use(r.authMiddleware.RequireAuth())
	{
		admin.GET("/about", r.aboutHandler.Get)
		admin.PUT("/about", r.aboutHandler.Put)

		registerContent(admin, "services", r.serviceHandler)
		registerContent(admin, "projects", r.projectHandler)
		registerContent(admin, "pricing", r.pricingHandler)
		registerContent(admin, "team", r.teamHandler)
		registerContent(admin, "gallery", r.galleryHandler)

		admin.POST("/drafts", r.draftHandler.Open)
		admin.GET("/drafts/:id", r.draftHandler.Get)
		admin.POST("/drafts/:id/ops", r.draftHandler.Apply)
		admin.POST("/drafts/:id/submit", r.draftHandler.Submit)
		admin.DELETE("/drafts/:id", r.draftHandler.Discard)

		admin.POST("/uploads/:folder", r.uploadHandler.Upload)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

func registerContent[T any](group *gin.RouterGroup, name string, h *handlers.ContentHandler[T]) {
	group.GET("/"+name, h.List)
	group.GET("/"+name+"/:id", h.Get)
	group.POST("/"+name, h.Create)
	group.PUT("/"+name+"/:id", h.Update)
	group.DELETE("/"+name+"/:id", h.Delete)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(addr string) error {
	r.logger.Info("Starting HTTP server", zap.String("address", addr))
	return r.engine.Run(addr)
}
