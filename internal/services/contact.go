package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

// ContactService handles contact-form submissions and their admin workflow.
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	NgoID   string `json:"ngoId" binding:"max=50"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// Submit stores a new contact-form entry with status "new".
func (s *ContactService) Submit(req *SubmitContactRequest) (*models.Contact, error) {
	contact := models.Contact{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		NgoID:   strings.TrimSpace(req.NgoID),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactStatusNew,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListAll returns every contact, newest first.
func (s *ContactService) ListAll() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListByStatus returns contacts in a given workflow state, newest first.
func (s *ContactService) ListByStatus(status string) ([]models.Contact, error) {
	if !validContactStatus(status) {
		return nil, fmt.Errorf("invalid contact status: %s", status)
	}
	var contacts []models.Contact
	err := s.db.Where("status = ?", status).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetByID looks up one contact. Returns gorm.ErrRecordNotFound when absent.
func (s *ContactService) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateStatus moves a contact through its workflow.
func (s *ContactService) UpdateStatus(id, status string) (*models.Contact, error) {
	if !validContactStatus(status) {
		return nil, fmt.Errorf("invalid contact status: %s", status)
	}

	result := s.db.Model(&models.Contact{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetByID(id)
}

func validContactStatus(status string) bool {
	switch status {
	case models.ContactStatusNew, models.ContactStatusInProgress, models.ContactStatusResolved:
		return true
	}
	return false
}
