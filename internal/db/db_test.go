package db

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"abyos-admin/internal/config"
	"abyos-admin/internal/user"
)

// Dummy DSN for test (won't actually connect, just checks error path)
func TestOpen_InvalidDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.Postgres.DSN = "invalid-dsn-for-testing"
	_, err := Open(cfg)
	if err == nil {
		t.Errorf("expected error for invalid DSN, got nil")
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func TestSeedAdmin_CreatesAndUpdates(t *testing.T) {
	conn := openTestDB(t)

	cfg := &config.Config{}
	cfg.Seed.AdminName = "Admin"
	cfg.Seed.AdminEmail = "admin@abyos.com"
	cfg.Seed.AdminPasswordHash = "$2b$12$QGIn9v3C20O.9Ihd/tuB1e7NkbyIRByF3b5kM9v0Ny2kpOifAM17C"

	if err := SeedAdmin(conn, cfg); err != nil {
		t.Fatalf("SeedAdmin failed: %v", err)
	}
	var u user.User
	if err := conn.Where("email = ?", cfg.Seed.AdminEmail).First(&u).Error; err != nil {
		t.Fatalf("seeded admin not found: %v", err)
	}
	if !u.Admin {
		t.Errorf("seeded user should be admin")
	}
	if u.VerifiedAt == nil {
		t.Errorf("seeded user should be verified")
	}

	// Second run updates the hash instead of failing on the unique email.
	cfg.Seed.AdminPasswordHash = "newhash"
	if err := SeedAdmin(conn, cfg); err != nil {
		t.Fatalf("SeedAdmin rerun failed: %v", err)
	}
	if err := conn.Where("email = ?", cfg.Seed.AdminEmail).First(&u).Error; err != nil {
		t.Fatalf("admin missing after rerun: %v", err)
	}
	if u.Password != "newhash" {
		t.Errorf("admin hash was not refreshed")
	}
}

func TestSeedAdmin_NoopWithoutConfig(t *testing.T) {
	conn := openTestDB(t)
	if err := SeedAdmin(conn, &config.Config{}); err != nil {
		t.Fatalf("SeedAdmin should be a no-op: %v", err)
	}
	var count int64
	conn.Model(&user.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no users, got %d", count)
	}
}
