package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"abyos-admin/internal/config"
	"abyos-admin/internal/resource"
	"abyos-admin/internal/user"
)

// Open connects to Postgres and migrates the schema. The handle is returned
// to the caller; lifecycle is owned by the process entry point.
func Open(cfg *config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Printf("Database connected and migrated")
	return conn, nil
}

// Migrate applies the schema for all persisted models.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&user.User{},
		&resource.Resource{},
		&resource.UserResource{},
	)
}
