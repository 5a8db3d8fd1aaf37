package main

import (
	"fmt"
	"os"

	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/internal/utils"
)

// Resets the password of an admin account directly in the database.
// Usage: go run scripts/reset_admin_password.go <username> <new-password>
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: go run scripts/reset_admin_password.go <username> <new-password>")
		os.Exit(1)
	}
	username, newPassword := os.Args[1], os.Args[2]

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := models.GetDB()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		fmt.Printf("User %q not found: %v\n", username, err)
		os.Exit(1)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	err = db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"password": hash, "is_active": true}).Error
	if err != nil {
		fmt.Printf("Failed to update password: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Password updated for %q\n", username)
}
