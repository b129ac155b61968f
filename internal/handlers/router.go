package handlers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/display"
	"github.com/skbsalatiga/signage-backend/internal/middleware"
	"github.com/skbsalatiga/signage-backend/internal/services"
	"github.com/skbsalatiga/signage-backend/internal/web"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps API request bodies
const maxBodyBytes = 1 << 20

// Dependencies are the services the router wires into handlers
type Dependencies struct {
	Store   database.Store
	Display *services.DisplayService
	Export  *services.ExportService
	Feed    *services.FeedService
	Logger  *logrus.Logger
	Version string
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	loc, err := time.LoadLocation(cfg.Display.Location)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.SetHTMLTemplate(web.Templates())

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  cfg.CORS.AllowedMethods,
		AllowHeaders:  cfg.CORS.AllowedHeaders,
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	contentHandler := NewContentHandler(deps.Store, deps.Display, deps.Logger)
	displayHandler := NewDisplayHandler(deps.Display, display.PageOptions{
		SiteTitle:        cfg.Display.SiteTitle,
		RefreshInterval:  cfg.Display.RefreshInterval,
		RotationInterval: cfg.Display.RotationInterval,
		Location:         loc,
	}, deps.Logger)
	feedHandler := NewFeedHandler(deps.Feed, deps.Logger)
	exportHandler := NewExportHandler(deps.Export, deps.Logger)

	// Health check endpoint
	router.GET("/health", HealthCheck(deps.Store, deps.Version))

	// Display page
	router.GET("/", displayHandler.Page)

	// Feeds
	router.GET("/feed/announcements.rss", feedHandler.RSS)
	router.GET("/feed/announcements.atom", feedHandler.Atom)

	api := router.Group("/api")
	api.Use(middleware.MaxBytesMiddleware(maxBodyBytes))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		api.Use(middleware.MutatingOnly(middleware.RateLimitMiddleware(limiter)))
	}
	{
		api.GET("/display", displayHandler.GetSnapshot)

		// Staff
		api.GET("/staff-status", contentHandler.ListStaff)
		api.POST("/staff-status", contentHandler.ReplaceStaff)
		api.POST("/staff", contentHandler.AddStaff)
		api.DELETE("/staff/:id", contentHandler.RemoveStaff)

		// Announcements
		api.GET("/announcement", contentHandler.GetLatestAnnouncement)
		api.POST("/announcement", contentHandler.CreateLegacyAnnouncement)
		api.GET("/announcements", contentHandler.ListAnnouncements)
		api.POST("/announcements", contentHandler.CreateAnnouncement)
		api.PATCH("/announcements/:id", contentHandler.PatchAnnouncement)
		api.DELETE("/announcements/:id", contentHandler.DeleteAnnouncement)

		// Legacy single video
		api.GET("/video-config", contentHandler.GetVideoConfig)
		api.POST("/video-config", contentHandler.SetVideoConfig)

		// Video playlist
		api.GET("/video-playlist", contentHandler.ListVideoPlaylist)
		api.GET("/video-playlist/:id", contentHandler.GetVideoPlaylistEntry)
		api.POST("/video-playlist", contentHandler.AddVideoPlaylistEntry)
		api.PATCH("/video-playlist/:id", contentHandler.PatchVideoPlaylistEntry)
		api.DELETE("/video-playlist/:id", contentHandler.DeleteVideoPlaylistEntry)

		// Export
		api.GET("/export/content.xlsx", exportHandler.ContentWorkbook)
	}

	return router, nil
}
