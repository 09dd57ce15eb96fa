package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/storefront/config"
	"github.com/storefront/database"
)

func main() {
	force := flag.Bool("force", false, "Clear existing catalog data before seeding")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting database seeding tool")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	fmt.Printf("Database: %s@%s:%s/%s\n\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatal("Database connection check failed:", err)
	}

	if *force {
		fmt.Println("Force flag enabled. Clearing existing data...")
		// Children first; categories cascade anyway but be explicit
		for _, table := range []string{"products", "categories"} {
			if err := database.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				log.Printf("Warning: Could not clear table %s: %v", table, err)
			} else {
				log.Printf("  Cleared table: %s", table)
			}
		}
		fmt.Println()
	}

	stats, err := database.SeedData(database.DB)
	if err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Printf("\nDone! Created %d categories and %d products\n",
		stats.CategoriesCreated, stats.ProductsCreated)
	fmt.Printf("Total categories: %d\n", stats.TotalCategories)
	fmt.Printf("Total products: %d\n", stats.TotalProducts)
}

func showHelp() {
	fmt.Println("Database Seeding Tool")
	fmt.Println("====================")
	fmt.Println("\nSeeds sample categories and products. Safe to re-run: every")
	fmt.Println("named entity is created with get-or-create semantics.")
	fmt.Println("\nUsage:")
	fmt.Println("  go run cmd/seed/main.go [flags]")
	fmt.Println("\nFlags:")
	fmt.Println("  -force    Clear catalog tables before seeding")
	fmt.Println("  -help     Show this help message")
}
