// Command admin_seed creates the administrator credential. Administrators
// manage users only; they get no accounts.
package main

import (
	"log"
	"os"

	"skybank/internal/config"
	"skybank/internal/models"
	"skybank/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("username = ?", adminUsername).First(&existing).Error; err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	admin := models.User{
		Username: adminUsername,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin user:", err)
	}

	log.Println("admin account created")
}
