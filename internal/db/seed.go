package db

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"abyos-admin/internal/config"
	"abyos-admin/internal/user"
)

// SeedAdmin ensures the bootstrap admin account exists. Existing rows are
// updated in place so a changed config hash takes effect on restart.
func SeedAdmin(conn *gorm.DB, cfg *config.Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPasswordHash == "" {
		return nil
	}
	now := time.Now()
	var existing user.User
	err := conn.Where("email = ?", cfg.Seed.AdminEmail).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin := user.User{
			Name:       cfg.Seed.AdminName,
			Email:      cfg.Seed.AdminEmail,
			Password:   cfg.Seed.AdminPasswordHash,
			Admin:      true,
			VerifiedAt: &now,
		}
		if err := conn.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seed: admin user created")
		return nil
	}
	if err != nil {
		return err
	}
	existing.Name = cfg.Seed.AdminName
	existing.Password = cfg.Seed.AdminPasswordHash
	existing.Admin = true
	if existing.VerifiedAt == nil {
		existing.VerifiedAt = &now
	}
	if err := conn.Save(&existing).Error; err != nil {
		return err
	}
	log.Printf("Seed: admin user ensured")
	return nil
}
