package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/taskmanager/db"
	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/config"
	"github.com/monocle-dev/taskmanager/internal/realtime"
	"github.com/monocle-dev/taskmanager/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database, err := db.ConnectDatabase(cfg.DBDriver, cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	if err != nil {
		log.Fatalf("Failed to initialize tokens: %v", err)
	}

	r := router.NewRouter(cfg, database, tokens, realtime.NewHub())

	log.Printf("Listening on :%s%s", cfg.Port, cfg.BaseURL)

	if err = r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
