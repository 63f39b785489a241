package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"example.com/worklog/config"
	"example.com/worklog/internal/service"
)

// Server is the HTTP server for the API
type Server struct {
	cfg        config.Config
	router     *gin.Engine
	httpServer *http.Server
	worklog    *service.WorkLogService
	approvals  *service.ApprovalService
	admin      *service.AdminService
}

// NewServer creates a new API server
func NewServer(cfg config.Config, worklog *service.WorkLogService, approvals *service.ApprovalService, admin *service.AdminService) *Server {
	server := &Server{
		cfg:       cfg,
		router:    gin.New(),
		worklog:   worklog,
		approvals: approvals,
		admin:     admin,
	}

	registerValidations()
	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// registerValidations adds custom rules to gin's validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01", fl.Field().String())
			return err == nil
		})
	}
}

// setupMiddleware adds middleware to the router
func (s *Server) setupMiddleware() {
	s.router.Use(RequestIDMiddleware())
	if s.cfg.CorsEnabled {
		s.router.Use(CORSMiddleware())
	}
	s.router.Use(gin.Recovery())
	s.router.Use(LoggingMiddleware())
}

// setupRoutes defines the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	v1 := s.router.Group("/api/v1")

	entries := v1.Group("/entries")
	{
		entries.POST("", s.createEntry)
		entries.GET("/:id", s.getEntry)
		entries.PUT("/:id", s.updateEntry)
		entries.DELETE("/:id", s.deleteEntry)
		entries.POST("/:id/submit", s.submitEntry)
		entries.POST("/:id/recall", s.recallEntry)
	}

	absences := v1.Group("/absences")
	{
		absences.POST("", s.createAbsence)
		absences.PUT("/:id", s.updateAbsence)
		absences.DELETE("/:id", s.deleteAbsence)
	}

	members := v1.Group("/members")
	{
		members.GET("/:id/entries", s.listEntries)
		members.GET("/:id/absences", s.listAbsences)
		members.GET("/:id/calendar/:month", s.getCalendar)
		members.PUT("/:id", s.updateMember)
		members.DELETE("/:id", s.deleteMember)
	}

	approvals := v1.Group("/approvals")
	{
		approvals.POST("", s.submitMonth)
		approvals.GET("/:id/:month", s.getApproval)
		approvals.POST("/:id/:month/approve", s.approveMonth)
		approvals.POST("/:id/:month/reject", s.rejectMonth)
	}

	tenants := v1.Group("/tenants")
	{
		tenants.POST("", s.createTenant)
		tenants.GET("", s.listTenants)
		tenants.PUT("/:id", s.updateTenant)
		tenants.DELETE("/:id", s.deleteTenant)
		tenants.POST("/:id/organizations", s.createOrganization)
		tenants.GET("/:id/organizations", s.listOrganizations)
		tenants.GET("/:id/members", s.listMembers)
		tenants.GET("/:id/approvals/:month", s.listApprovals)
		tenants.POST("/:id/pattern", s.createPattern)
	}

	organizations := v1.Group("/organizations")
	{
		organizations.PUT("/:id", s.updateOrganization)
		organizations.DELETE("/:id", s.deleteOrganization)
		organizations.POST("/:id/members", s.createMember)
	}

	patterns := v1.Group("/patterns")
	{
		patterns.PUT("/:id", s.updatePattern)
		patterns.DELETE("/:id", s.deletePattern)
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.HTTPServerAddress,
		Handler:      s.router,
		ReadTimeout:  s.cfg.HTTPServerTimeout,
		WriteTimeout: s.cfg.HTTPServerTimeout,
	}

	log.Info().Str("address", s.cfg.HTTPServerAddress).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
