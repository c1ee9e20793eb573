package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type Config struct {
	Server struct {
		Host          string `json:"host"`
		Port          int    `json:"port"`
		ResetSecret   string `json:"resetSecret"`
		SessionTTLMin int    `json:"sessionTtlMinutes"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Seed struct {
		AdminName         string `json:"adminName"`
		AdminEmail        string `json:"adminEmail"`
		AdminPasswordHash string `json:"adminPasswordHash"`
	} `json:"seed"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation
		if c.Server.ResetSecret == "" {
			cfgErr = errors.New("resetSecret must be set in config")
			return
		}
		if c.Server.SessionTTLMin <= 0 {
			c.Server.SessionTTLMin = 60 * 24 * 7
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
