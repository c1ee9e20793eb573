package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"abyos-admin/internal/api"
	"abyos-admin/internal/auth"
	"abyos-admin/internal/config"
	"abyos-admin/internal/db"
	"abyos-admin/internal/notify"
	redisdb "abyos-admin/internal/redis"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	if err := db.SeedAdmin(conn, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	ttl := time.Duration(cfg.Server.SessionTTLMin) * time.Minute
	var sessions auth.Store
	if cfg.Redis.Addr != "" {
		sessions = auth.NewRedisStore(redisdb.NewClient(cfg), ttl)
	} else {
		log.Printf("[Main] No redis configured, using in-memory sessions")
		sessions = auth.NewMemoryStore(ttl)
	}

	hub := notify.NewHub()
	r := api.SetupRouter(cfg, conn, sessions, hub)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
