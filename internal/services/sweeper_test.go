package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

func insertJobWithAge(t *testing.T, db *gorm.DB, status string, age time.Duration) string {
	t.Helper()
	job := models.Job{ID: uuid.NewString(), Status: status}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("failed to insert job: %v", err)
	}
	// UpdateColumn skips the auto-timestamp so the job looks old.
	err := db.Model(&models.Job{}).Where("id = ?", job.ID).
		UpdateColumn("updated_at", time.Now().Add(-age)).Error
	if err != nil {
		t.Fatalf("failed to age job: %v", err)
	}
	return job.ID
}

func TestJobSweeper_FailsStaleJobs(t *testing.T) {
	db := setupTestDB(t)
	sweeper := NewJobSweeper(db, &config.UploadConfig{StaleJobAge: time.Hour})

	stalePending := insertJobWithAge(t, db, models.JobStatusPending, 2*time.Hour)
	staleProcessing := insertJobWithAge(t, db, models.JobStatusProcessing, 2*time.Hour)
	freshPending := insertJobWithAge(t, db, models.JobStatusPending, time.Minute)
	staleCompleted := insertJobWithAge(t, db, models.JobStatusCompleted, 2*time.Hour)

	sweeper.Sweep()

	jobs := NewJobService(db)
	assertStatus := func(id, want string) {
		t.Helper()
		job, err := jobs.Get(id)
		if err != nil {
			t.Fatalf("failed to read job: %v", err)
		}
		if job.Status != want {
			t.Errorf("job %s status = %q, expected %q", id, job.Status, want)
		}
	}

	assertStatus(stalePending, models.JobStatusFailed)
	assertStatus(staleProcessing, models.JobStatusFailed)
	assertStatus(freshPending, models.JobStatusPending)
	assertStatus(staleCompleted, models.JobStatusCompleted)

	swept, _ := jobs.Get(stalePending)
	if !strings.Contains(swept.ErrorMessage, "abandoned") {
		t.Errorf("swept job should explain the failure, got %q", swept.ErrorMessage)
	}
}

func TestJobSweeper_EmptyTable(t *testing.T) {
	db := setupTestDB(t)
	sweeper := NewJobSweeper(db, &config.UploadConfig{StaleJobAge: time.Hour})

	// Must not panic or error-log its way into a bad state with nothing to do.
	sweeper.Sweep()

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 0 {
		t.Errorf("sweep should not create jobs, got %d", count)
	}
}
