package main

import (
	"log"

	"github.com/devicepulse/agent/config"
	"github.com/devicepulse/agent/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OpenMode() {
		log.Printf("⚠️  No API key configured - running in OPEN MODE (no authentication)")
		log.Printf("🔒 Set API_KEY in the environment or .env file to require authentication")
	}

	// Create and run server
	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
