package main

import (
	"context"

	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/handlers"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/internal/utils"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
)

// appServices holds everything the route table and shutdown path need.
type appServices struct {
	cfg              *config.Config
	taskQueue        services.TaskQueue
	worker           *services.Worker
	sweeper          *services.JobSweeper
	authHandler      *handlers.AuthHandler
	uploadHandler    *handlers.UploadHandler
	reportHandler    *handlers.ReportHandler
	dashboardHandler *handlers.DashboardHandler
	contactHandler   *handlers.ContactHandler
}

// bootstrap initializes the database, services, queue and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Ingestion pipeline behind the task queue. The optional deadline is
	// applied here so both queue implementations honor it.
	ingestion := services.NewIngestionService(
		services.NewReportService(db),
		services.NewJobService(db),
	)
	processor := func(ctx context.Context, task *services.IngestTask) error {
		if cfg.Upload.IngestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Upload.IngestTimeout)
			defer cancel()
		}
		return ingestion.Process(ctx, task.JobID, task.FileName, task.Data)
	}

	taskQueue := services.InitTaskQueue(cfg)
	if localQueue, ok := taskQueue.(*services.LocalQueue); ok {
		localQueue.SetProcessor(processor)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processor)
			worker.Start()
		}
	}

	sweeper := services.NewJobSweeper(db, &cfg.Upload)
	if err := sweeper.Start(cfg.Upload.SweepSchedule); err != nil {
		logger.Warn().Err(err).Msg("Failed to start stale-job sweeper")
	}

	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:              cfg,
		taskQueue:        taskQueue,
		worker:           worker,
		sweeper:          sweeper,
		authHandler:      authHandler,
		uploadHandler:    handlers.NewUploadHandler(db, taskQueue, &cfg.Upload),
		reportHandler:    handlers.NewReportHandler(db),
		dashboardHandler: handlers.NewDashboardHandler(db),
		contactHandler:   handlers.NewContactHandler(db),
	}
}

// shutdown stops background services in dependency order.
func (s *appServices) shutdown() {
	s.sweeper.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("Background services stopped")
}
