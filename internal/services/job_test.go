package services

import (
	"errors"
	"testing"

	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

func TestJobService_Create(t *testing.T) {
	jobs := NewJobService(setupTestDB(t))

	job, err := jobs.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if job.ID == "" {
		t.Error("job should get an id at creation")
	}
	if job.Status != models.JobStatusPending {
		t.Errorf("status = %q, expected %q", job.Status, models.JobStatusPending)
	}
	if job.Progress != 0 || job.TotalRows != 0 || job.ProcessedRows != 0 {
		t.Errorf("counters should start at zero, got %d/%d/%d",
			job.Progress, job.TotalRows, job.ProcessedRows)
	}
}

func TestJobService_PartialUpdate(t *testing.T) {
	jobs := NewJobService(setupTestDB(t))

	job, err := jobs.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = jobs.Update(job.ID, JobUpdate{
		Status:    models.JobStatusProcessing,
		TotalRows: intPtr(10),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// Only progress this time; status and totals must survive.
	err = jobs.Update(job.ID, JobUpdate{
		Progress:      intPtr(40),
		ProcessedRows: intPtr(4),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := jobs.Get(job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.JobStatusProcessing {
		t.Errorf("status = %q, expected %q to survive the partial update", got.Status, models.JobStatusProcessing)
	}
	if got.TotalRows != 10 {
		t.Errorf("totalRows = %d, expected 10 to survive the partial update", got.TotalRows)
	}
	if got.Progress != 40 || got.ProcessedRows != 4 {
		t.Errorf("progress = %d/%d, expected 40/4", got.Progress, got.ProcessedRows)
	}
}

func TestJobService_UpdateEmptyIsNoop(t *testing.T) {
	jobs := NewJobService(setupTestDB(t))

	job, _ := jobs.Create()
	if err := jobs.Update(job.ID, JobUpdate{}); err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}

	got, _ := jobs.Get(job.ID)
	if got.Status != models.JobStatusPending {
		t.Errorf("status = %q, expected unchanged pending", got.Status)
	}
}

func TestJobService_GetUnknown(t *testing.T) {
	jobs := NewJobService(setupTestDB(t))

	_, err := jobs.Get("no-such-job")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestJob_IsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{models.JobStatusPending, false},
		{models.JobStatusProcessing, false},
		{models.JobStatusCompleted, true},
		{models.JobStatusCompletedWithErrors, true},
		{models.JobStatusFailed, true},
	}

	for _, tt := range tests {
		job := models.Job{Status: tt.status}
		if job.IsTerminal() != tt.terminal {
			t.Errorf("IsTerminal(%q) = %v, expected %v", tt.status, job.IsTerminal(), tt.terminal)
		}
	}
}
