package main

import (
	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/handlers"
	"github.com/utkarsh/ngo-portal/backend/internal/middleware"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS())
	r.MaxMultipartMemory = svc.cfg.Upload.MaxUploadBytes()

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		// Auth (public)
		api.POST("/auth/login", svc.authHandler.Login)

		// Report submission and bulk upload are public: NGOs submit
		// without accounts. Job status stays public so the upload page
		// can poll progress.
		api.POST("/reports", svc.reportHandler.Submit)
		api.POST("/upload", svc.uploadHandler.Upload)
		api.GET("/upload/job-status/:jobId", svc.uploadHandler.GetJobStatus)

		// Contact form (public submit)
		api.POST("/contacts", svc.contactHandler.Submit)

		// Authenticated routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
		}

		// Admin-only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/reports/dashboard", svc.dashboardHandler.GetMonthlySummary)
			admin.GET("/upload/jobs", svc.uploadHandler.ListJobs)

			admin.GET("/contacts", svc.contactHandler.List)
			admin.GET("/contacts/status/:status", svc.contactHandler.ListByStatus)
			admin.GET("/contacts/:contactId", svc.contactHandler.GetByID)
			admin.PUT("/contacts/:contactId/status", svc.contactHandler.UpdateStatus)
		}
	}
}
