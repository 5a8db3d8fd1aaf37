package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/middleware"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.JWT, &cfg.Admin),
	}
}

// Login handles admin login.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	response.Success(c, "Login successful", resp)
}

// GetCurrentUser returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, "User retrieved successfully", user)
}

// Logout acknowledges logout; the client discards its token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, "Logged out successfully", nil)
}

// CreateAdminIfNotExists seeds the default admin account.
func (h *AuthHandler) CreateAdminIfNotExists() error {
	return h.authService.CreateAdminIfNotExists()
}
