// Package main seeds the database: always the admin account from the
// environment, plus the demo dataset when SEED_DEMO=true.
package main

import (
	"log"
	"os"

	"roost/internal/config"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/seed"
	"roost/internal/utils"
)

func main() {
	config.LoadEnv()

	adminPhone := os.Getenv("ADMIN_PHONE")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPhone == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	store := repositories.NewGormStore(repositories.DB)

	if _, err := store.Users().GetByPhone(adminPhone); err == nil {
		log.Println("admin user already exists")
	} else {
		hash, err := utils.HashPassword(adminPassword)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		admin := &models.User{
			Name:         "Administrator",
			Email:        adminEmail,
			Phone:        adminPhone,
			Password:     hash,
			Role:         models.RoleAdmin,
			Status:       "active",
			TokenVersion: 1,
		}
		if err := store.Users().Create(admin); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		log.Println("admin account created")
	}

	if config.GetEnv("SEED_DEMO", "false") == "true" {
		if err := seed.Demo(store); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("demo dataset seeded")
	}
}
