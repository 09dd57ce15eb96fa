package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/storefront/catalog"
	"github.com/storefront/config"
	"github.com/storefront/database"
	"github.com/storefront/tasks"
	"github.com/storefront/web"
	"github.com/storefront/web/handlers"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	// Run migration if requested
	if *migrate {
		log.Println("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		log.Println("Seeding database with sample data...")
		if _, err := database.SeedData(database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("Database seeded successfully")
	}

	// Connect the task queue client. The catalog stays usable without the
	// broker; enqueues then fail softly and get logged.
	var enqueuer tasks.Enqueuer
	taskClient, err := tasks.NewClient(&cfg.Broker)
	if err != nil {
		log.Printf("WARNING: task broker unavailable, notifications disabled: %v", err)
		enqueuer = tasks.NopEnqueuer{}
	} else {
		defer taskClient.Close()
		enqueuer = taskClient
	}

	db := database.GetDB()
	handler := handlers.New(
		catalog.NewProductRepository(db),
		catalog.NewCategoryRepository(db),
		enqueuer,
	)

	// Create and start web server
	server := web.NewServer(handler)

	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func showHelp() {
	log.Println(`
Storefront Catalog Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration and seed data
  go run main.go -migrate -seed

For the background worker, run:
  go run cmd/worker/main.go

For seed control, use:
  go run cmd/seed/main.go

To exercise the notification task, use:
  go run cmd/taskcheck/main.go`)
}
