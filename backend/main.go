package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"coursecms/backend/config"
	"coursecms/backend/middleware"
	"coursecms/backend/routes"
	"coursecms/backend/seed"
	"coursecms/backend/store"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := utils.InitLogger()
	if !cfg.AdminConfigured() || cfg.SessionSecret == "" {
		logger.Println("Admin credentials or SESSION_SECRET missing: login will be refused")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize store
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Error initializing %s store: %v", cfg.StoreDriver, err)
	}
	defer st.Close(context.Background())

	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("Error migrating store: %v", err)
	}

	if cfg.SeedPath != "" {
		units, err := seed.Load(cfg.SeedPath, logger)
		if err != nil {
			log.Fatalf("Error loading seed data: %v", err)
		}
		res, err := seed.Import(ctx, st, units, logger)
		if err != nil {
			log.Fatalf("Error importing seed data: %v", err)
		}
		logger.Printf("Seed import: %d units imported, %d already present", res.Imported, res.Skipped)
	}

	app := routes.NewApp()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(compress.New())
	app.Use(middleware.LoggingMiddleware(logger))

	routes.SetupRoutes(app, st, cfg, logger)

	go func() {
		logger.Printf("Server starting on :%s (store: %s)", cfg.ServerPort, cfg.StoreDriver)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Printf("Shutdown error: %v", err)
	}
}
