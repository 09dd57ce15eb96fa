package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/storefront/config"
	"github.com/storefront/database"
)

func main() {
	var (
		drop = flag.Bool("drop", false, "Drop all tables before migration")
		help = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting database migration tool")
	fmt.Printf("Database: %s@%s:%s/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	if *drop {
		fmt.Println("Dropping all tables...")
		if err := database.DropTables(database.DB); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migration completed successfully")
}

func showHelp() {
	fmt.Println("Database Migration Tool")
	fmt.Println("=======================")
	fmt.Println("\nUsage:")
	fmt.Println("  go run cmd/migrate/main.go [flags]")
	fmt.Println("\nFlags:")
	fmt.Println("  -drop     Drop all tables before migration")
	fmt.Println("  -help     Show this help message")
}
