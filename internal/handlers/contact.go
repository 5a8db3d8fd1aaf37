package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/pkg/response"
	"gorm.io/gorm"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{
		contactService: services.NewContactService(db),
	}
}

// Submit stores a contact-form entry.
// POST /api/contacts
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Submit(&req)
	if err != nil {
		response.ServerError(c, "Failed to submit contact form")
		return
	}

	response.Created(c, "Contact form submitted successfully", contact)
}

// List returns all contacts.
// GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactService.ListAll()
	if err != nil {
		response.ServerError(c, "Failed to retrieve contacts")
		return
	}

	response.Success(c, "Contacts retrieved successfully", contacts)
}

// ListByStatus returns contacts in one workflow state.
// GET /api/contacts/status/:status
func (h *ContactHandler) ListByStatus(c *gin.Context) {
	contacts, err := h.contactService.ListByStatus(c.Param("status"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid contact status") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to retrieve contacts")
		return
	}

	response.Success(c, "Contacts retrieved successfully", contacts)
}

// GetByID returns one contact.
// GET /api/contacts/:contactId
func (h *ContactHandler) GetByID(c *gin.Context) {
	contact, err := h.contactService.GetByID(c.Param("contactId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Contact not found")
			return
		}
		response.ServerError(c, "Failed to retrieve contact")
		return
	}

	response.Success(c, "Contact retrieved successfully", contact)
}

type updateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a contact through its workflow.
// PUT /api/contacts/:contactId/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req updateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.UpdateStatus(c.Param("contactId"), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Contact not found")
			return
		}
		if strings.Contains(err.Error(), "invalid contact status") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to update contact status")
		return
	}

	response.Success(c, "Contact status updated successfully", contact)
}
