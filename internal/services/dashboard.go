package services

import (
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates report data for the admin dashboard.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type NGOReportSummary struct {
	NgoID           string  `json:"ngoId"`
	NgoName         string  `json:"ngoName"`
	PeopleHelped    int     `json:"peopleHelped"`
	EventsConducted int     `json:"eventsConducted"`
	FundsUtilized   float64 `json:"fundsUtilized"`
}

// MonthlySummary is the dashboard payload for one month/year. The per-NGO
// list is returned whole; pagination is a client concern.
type MonthlySummary struct {
	Month                string             `json:"month"`
	Year                 int                `json:"year"`
	TotalNGOsReporting   int64              `json:"totalNGOsReporting"`
	TotalPeopleHelped    int64              `json:"totalPeopleHelped"`
	TotalEventsConducted int64              `json:"totalEventsConducted"`
	TotalFundsUtilized   float64            `json:"totalFundsUtilized"`
	NGOReports           []NGOReportSummary `json:"ngoReports"`
}

// GetMonthlySummary returns aggregated totals and a per-NGO breakdown for
// the given month and year.
func (s *DashboardService) GetMonthlySummary(month string, year int) (*MonthlySummary, error) {
	summary := MonthlySummary{
		Month:      month,
		Year:       year,
		NGOReports: []NGOReportSummary{},
	}

	var totals struct {
		Count  int64
		People int64
		Events int64
		Funds  float64
	}
	err := s.db.Model(&models.Report{}).
		Select("COUNT(*) as count, COALESCE(SUM(people_helped), 0) as people, COALESCE(SUM(events_conducted), 0) as events, COALESCE(SUM(funds_utilized), 0) as funds").
		Where("month = ? AND year = ?", month, year).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	summary.TotalNGOsReporting = totals.Count
	summary.TotalPeopleHelped = totals.People
	summary.TotalEventsConducted = totals.Events
	summary.TotalFundsUtilized = totals.Funds

	var rows []models.Report
	err = s.db.Where("month = ? AND year = ?", month, year).
		Order("ngo_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		summary.NGOReports = append(summary.NGOReports, NGOReportSummary{
			NgoID:           r.NgoID,
			NgoName:         r.NgoName,
			PeopleHelped:    r.PeopleHelped,
			EventsConducted: r.EventsConducted,
			FundsUtilized:   r.FundsUtilized,
		})
	}

	return &summary, nil
}
