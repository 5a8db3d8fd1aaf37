package models

import (
	"time"
)

// User represents a portal user. Only admins log in; NGO submitters use the
// public endpoints.
type User struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string     `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string     `gorm:"size:50;default:admin" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
