package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/snapgather/snapgather-backend/internal/models"
)

func NewDatabase(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Photo{},
		&models.CreditPackage{},
		&models.UserCreditPurchase{},
	); err != nil {
		return err
	}

	return seedCreditPackages(db)
}

// seedCreditPackages inserts the default packages if they are not present yet.
func seedCreditPackages(db *gorm.DB) error {
	packages := []models.CreditPackage{
		{
			Name:        "Starter",
			Description: "100 photo uploads, 3 events",
			Credits:     100,
			EventLimit:  3,
			PhotoLimit:  100,
			Price:       9.99,
			IsActive:    true,
		},
		{
			Name:        "Celebration",
			Description: "500 photo uploads, 10 events",
			Credits:     500,
			EventLimit:  10,
			PhotoLimit:  500,
			Price:       29.99,
			IsActive:    true,
		},
		{
			Name:        "Wedding",
			Description: "1500 photo uploads, unlimited events, priority support",
			Credits:     1500,
			EventLimit:  999,
			PhotoLimit:  1500,
			Price:       79.99,
			IsActive:    true,
		},
	}

	for _, pkg := range packages {
		var count int64
		if err := db.Model(&models.CreditPackage{}).Where("name = ?", pkg.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&pkg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
