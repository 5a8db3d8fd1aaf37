package services

import (
	"github.com/google/uuid"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

// JobService persists bulk-upload job lifecycle records.
type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// JobUpdate is a partial update; nil fields are left untouched.
type JobUpdate struct {
	Status        string
	Progress      *int
	TotalRows     *int
	ProcessedRows *int
	ErrorMessage  *string
}

// Create inserts a new pending job and returns it. The id is handed to the
// client before any processing starts.
func (s *JobService) Create() (*models.Job, error) {
	job := models.Job{
		ID:     uuid.NewString(),
		Status: models.JobStatusPending,
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Update applies a partial update to a single job row. Updates are keyed by
// id so frequent per-row progress writes never serialize unrelated jobs.
func (s *JobService) Update(jobID string, upd JobUpdate) error {
	fields := map[string]interface{}{}
	if upd.Status != "" {
		fields["status"] = upd.Status
	}
	if upd.Progress != nil {
		fields["progress"] = *upd.Progress
	}
	if upd.TotalRows != nil {
		fields["total_rows"] = *upd.TotalRows
	}
	if upd.ProcessedRows != nil {
		fields["processed_rows"] = *upd.ProcessedRows
	}
	if upd.ErrorMessage != nil {
		fields["error_message"] = *upd.ErrorMessage
	}
	if len(fields) == 0 {
		return nil
	}
	return s.db.Model(&models.Job{}).Where("id = ?", jobID).Updates(fields).Error
}

// Get looks up a job by id. Returns gorm.ErrRecordNotFound for unknown ids.
func (s *JobService) Get(jobID string) (*models.Job, error) {
	var job models.Job
	if err := s.db.Where("id = ?", jobID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns all jobs, newest first.
func (s *JobService) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// intPtr and strPtr keep JobUpdate call sites readable.
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
