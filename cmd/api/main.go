package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/database"
	"github.com/recipehub/backend/internal/router"
	"github.com/recipehub/backend/internal/server"
	"github.com/recipehub/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The sqlite development database keeps itself up to date; postgres
	// deployments are migrated via cmd/migrate.
	if cfg.DBDriver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// Redis is optional; without it token lookups go to the database.
	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: redis unavailable (%v), continuing without token cache", err)
			cache = nil
		}
	}

	var storage service.Storage
	if cfg.StorageDriver == "s3" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to configure S3 storage: %v", err)
		}
		storage = service.NewS3Storage(s3cfg)
	} else {
		storage = service.NewLocalStorage(cfg.UploadDir, cfg.BaseURL)
	}

	srv := server.New(cfg.ServerHost, cfg.ServerPort, router.SetupRouter(cfg, db, cache, storage))

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
