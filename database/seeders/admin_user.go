package seeders

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipment-tracking/constants"
	"shipment-tracking/logger"
	"shipment-tracking/models/user"
	"shipment-tracking/utils"
)

// SeedAdminUser makes sure one admin login exists so a fresh install can be
// reached. Password comes from ADMIN_PASSWORD; nothing is seeded without it.
func SeedAdminUser(db *gorm.DB) error {
	var existing user.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warning("ADMIN_PASSWORD not set, skipping admin user seeding")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := user.User{
		Uuid:         uuid.NewString(),
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Success("Seeded default admin user")
	return nil
}
