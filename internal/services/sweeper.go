package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
	"gorm.io/gorm"
)

// JobSweeper reconciles jobs orphaned by a crash: anything still pending or
// processing past the configured age is moved to failed, so pollers are not
// left watching a job that will never finish.
type JobSweeper struct {
	db        *gorm.DB
	maxAge    time.Duration
	scheduler *cron.Cron
}

func NewJobSweeper(db *gorm.DB, cfg *config.UploadConfig) *JobSweeper {
	return &JobSweeper{
		db:     db,
		maxAge: cfg.StaleJobAge,
	}
}

// Start schedules the sweep with the configured cron spec.
func (s *JobSweeper) Start(schedule string) error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(schedule, s.Sweep); err != nil {
		return err
	}
	s.scheduler.Start()
	logger.Infof("[Sweeper] Stale-job sweep scheduled (%s), max age %v", schedule, s.maxAge)
	return nil
}

// Stop halts the scheduler.
func (s *JobSweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Sweep fails every non-terminal job whose last update is older than the
// configured age. Terminal jobs are never touched.
func (s *JobSweeper) Sweep() {
	cutoff := time.Now().Add(-s.maxAge)

	result := s.db.Model(&models.Job{}).
		Where("status IN ? AND updated_at < ?",
			[]string{models.JobStatusPending, models.JobStatusProcessing}, cutoff).
		Updates(map[string]interface{}{
			"status":        models.JobStatusFailed,
			"error_message": fmt.Sprintf("job abandoned: no progress for over %v", s.maxAge),
		})

	if result.Error != nil {
		logger.Errorf("[Sweeper] sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Warnf("[Sweeper] marked %d stale job(s) as failed", result.RowsAffected)
	}
}
