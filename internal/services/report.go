package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportService persists monthly activity reports.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Upsert writes a report keyed by (ngo_id, month, year) in one atomic
// statement. On conflict the attribute columns are replaced but created_at
// is kept, so the original submission timestamp survives overwrites.
func (s *ReportService) Upsert(rec ReportRecord) (*models.Report, error) {
	report := models.Report{
		ID:              uuid.NewString(),
		NgoID:           rec.NgoID,
		NgoName:         fmt.Sprintf("NGO %s", rec.NgoID),
		Month:           rec.Month,
		Year:            rec.Year,
		PeopleHelped:    rec.PeopleHelped,
		EventsConducted: rec.EventsConducted,
		FundsUtilized:   rec.FundsUtilized,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ngo_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ngo_name", "people_helped", "events_conducted", "funds_utilized", "updated_at",
		}),
	}).Create(&report).Error
	if err != nil {
		return nil, err
	}

	// Re-read by natural key: on conflict the stored row keeps its original
	// id and created_at, which the insert struct does not reflect.
	var stored models.Report
	if err := s.db.Where("ngo_id = ? AND month = ? AND year = ?", rec.NgoID, rec.Month, rec.Year).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByMonth returns all reports for a month/year, newest first.
func (s *ReportService) ListByMonth(month string, year int) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Where("month = ? AND year = ?", month, year).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ListAll returns every report, newest first.
func (s *ReportService) ListAll() ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
