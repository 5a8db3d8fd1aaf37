package models

import (
	"time"
)

// Report is one NGO's monthly activity record. The natural key is
// (ngo_id, month, year); resubmitting for the same key overwrites the
// attribute values but keeps the original created_at.
type Report struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	NgoID           string    `gorm:"size:50;not null;uniqueIndex:idx_reports_natural_key" json:"ngoId"`
	NgoName         string    `gorm:"size:100" json:"ngoName"`
	Month           string    `gorm:"size:20;not null;uniqueIndex:idx_reports_natural_key" json:"month"`
	Year            int       `gorm:"not null;uniqueIndex:idx_reports_natural_key" json:"year"`
	PeopleHelped    int       `gorm:"not null" json:"peopleHelped"`
	EventsConducted int       `gorm:"not null" json:"eventsConducted"`
	FundsUtilized   float64   `gorm:"not null" json:"fundsUtilized"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Report) TableName() string { return "reports" }
