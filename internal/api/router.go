// Package api wires HTTP routes to handlers.
package api

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rcbc-digital/enquiry-mail/internal/api/handlers"
	"github.com/rcbc-digital/enquiry-mail/internal/api/middleware"
	"github.com/rcbc-digital/enquiry-mail/internal/mailparse"
	"github.com/rcbc-digital/enquiry-mail/internal/repository"
	"github.com/rcbc-digital/enquiry-mail/internal/services"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB          *gorm.DB
	Parser      *mailparse.Parser
	Logger      *slog.Logger
	MediaRoot   string // directory served under MediaURL
	MediaURL    string // URL prefix for extracted attachments
	MaxUploadMB int    // upload size limit for email containers
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB+2)))
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(cfg.DB)
	enquiryRepo := repository.NewEnquiryRepository(cfg.DB)

	// Initialize services and handlers
	enquiryService := services.NewEnquiryService(memberRepo, enquiryRepo, cfg.Logger)

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	emailHandler := handlers.NewEmailHandler(cfg.Parser, enquiryService, cfg.MaxUploadMB)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryRepo)
	memberHandler := handlers.NewMemberHandler(memberRepo)

	// Health route
	e.GET("/health", healthHandler.Health)

	// Extracted attachments are served straight from disk
	if cfg.MediaRoot != "" && cfg.MediaURL != "" {
		e.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	// API routes
	api := e.Group("/api")

	emails := api.Group("/emails")
	emails.POST("/parse", emailHandler.Parse)

	enquiries := api.Group("/enquiries")
	enquiries.POST("/from-email", emailHandler.CreateEnquiry)
	enquiries.GET("/:id", enquiryHandler.Get)
	enquiries.GET("/reference/:reference", enquiryHandler.GetByReference)

	members := api.Group("/members")
	members.POST("", memberHandler.Create)
	members.GET("/:id", memberHandler.Get)

	return e
}
