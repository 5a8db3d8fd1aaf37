package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/internal/utils"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
	"gorm.io/gorm"
)

// AuthService authenticates admin users and issues JWTs.
type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
	adminCfg  *config.AdminConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig, adminCfg *config.AdminConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg, adminCfg: adminCfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expireAt"`
}

var errInvalidCredentials = errors.New("invalid username or password")

// Login verifies credentials and returns a signed token. The error message
// never reveals whether the username or the password was wrong.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.New("user is disabled")
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, errInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Save(&user)

	return &LoginResponse{
		Token:    token,
		User:     &user,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

// GetUserByID fetches a user for the /auth/me endpoint.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the configured admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", s.adminCfg.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(s.adminCfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:       uuid.NewString(),
		Username: s.adminCfg.Username,
		Password: hash,
		Role:     "admin",
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info().Str("username", admin.Username).Msg("default admin user created")
	return nil
}
