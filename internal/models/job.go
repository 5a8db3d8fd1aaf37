package models

import (
	"time"
)

// Job status values. pending and processing are transient; the other three
// are terminal and never left once reached.
const (
	JobStatusPending             = "pending"
	JobStatusProcessing          = "processing"
	JobStatusCompleted           = "completed"
	JobStatusCompletedWithErrors = "completed_with_errors"
	JobStatusFailed              = "failed"
)

// Job tracks one bulk-upload ingestion run. Progress is a 0-100 percentage
// and never decreases while the job is processing. ErrorMessage carries a
// failure description, or the serialized validation outcome when the run
// completed with invalid rows.
type Job struct {
	ID            string    `gorm:"primaryKey;size:36" json:"jobId"`
	Status        string    `gorm:"size:30;not null;default:pending;index" json:"status"`
	Progress      int       `gorm:"not null;default:0" json:"progress"`
	TotalRows     int       `gorm:"not null;default:0" json:"totalRows"`
	ProcessedRows int       `gorm:"not null;default:0" json:"processedRows"`
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// IsTerminal reports whether the job has reached a final state.
func (j *Job) IsTerminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusCompletedWithErrors, JobStatusFailed:
		return true
	}
	return false
}
