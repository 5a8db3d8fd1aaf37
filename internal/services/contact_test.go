package services

import (
	"errors"
	"testing"

	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"gorm.io/gorm"
)

func submitTestContact(t *testing.T, contacts *ContactService) *models.Contact {
	t.Helper()
	contact, err := contacts.Submit(&SubmitContactRequest{
		Name:    "Asha Verma",
		Email:   "asha@example.org",
		NgoID:   "NGO001",
		Subject: "Upload question",
		Message: "How do I fix rejected rows?",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return contact
}

func TestContactService_Submit(t *testing.T) {
	contacts := NewContactService(setupTestDB(t))

	contact, err := contacts.Submit(&SubmitContactRequest{
		Name:    "  Asha Verma  ",
		Email:   " asha@example.org ",
		Subject: "Upload question",
		Message: "How do I fix rejected rows?",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if contact.ID == "" {
		t.Error("contact should get an id")
	}
	if contact.Status != models.ContactStatusNew {
		t.Errorf("status = %q, expected %q", contact.Status, models.ContactStatusNew)
	}
	if contact.Name != "Asha Verma" || contact.Email != "asha@example.org" {
		t.Errorf("fields should be trimmed: %q, %q", contact.Name, contact.Email)
	}
}

func TestContactService_UpdateStatus(t *testing.T) {
	contacts := NewContactService(setupTestDB(t))
	contact := submitTestContact(t, contacts)

	updated, err := contacts.UpdateStatus(contact.ID, models.ContactStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.ContactStatusInProgress {
		t.Errorf("status = %q, expected %q", updated.Status, models.ContactStatusInProgress)
	}

	if _, err := contacts.UpdateStatus(contact.ID, "shredded"); err == nil {
		t.Error("unknown status should be rejected")
	}

	_, err = contacts.UpdateStatus("no-such-contact", models.ContactStatusResolved)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestContactService_ListByStatus(t *testing.T) {
	contacts := NewContactService(setupTestDB(t))
	first := submitTestContact(t, contacts)
	submitTestContact(t, contacts)

	if _, err := contacts.UpdateStatus(first.ID, models.ContactStatusResolved); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	resolved, err := contacts.ListByStatus(models.ContactStatusResolved)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(resolved) != 1 {
		t.Errorf("expected 1 resolved contact, got %d", len(resolved))
	}

	open, err := contacts.ListByStatus(models.ContactStatusNew)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(open) != 1 {
		t.Errorf("expected 1 new contact, got %d", len(open))
	}

	if _, err := contacts.ListByStatus("bogus"); err == nil {
		t.Error("unknown status should be rejected")
	}
}
