package models

import (
	"time"
)

// Contact statuses.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
)

// Contact is a contact-form submission handled by admins.
type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	NgoID     string    `gorm:"size:50" json:"ngoId,omitempty"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;default:new;index" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Contact) TableName() string { return "contacts" }
