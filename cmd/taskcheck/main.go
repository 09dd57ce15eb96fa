package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/storefront/catalog"
	"github.com/storefront/config"
	"github.com/storefront/database"
	"github.com/storefront/tasks"
)

// resultWait is how long we poll for the worker's result before reporting
// a timeout.
const resultWait = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	products := catalog.NewProductRepository(database.GetDB())

	product, err := products.Latest()
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			log.Fatal("No products in the database. Seed some first: go run cmd/seed/main.go")
		}
		log.Fatalf("Failed to look up latest product: %v", err)
	}

	fmt.Printf("Found product: %s (ID: %d)\n\n", product.Name, product.ID)
	fmt.Println("Enqueuing notification task...")

	client, err := tasks.NewClient(&cfg.Broker)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}
	defer client.Close()

	jobID, err := client.EnqueueLogNewProduct(context.Background(), product.ID)
	if err != nil {
		log.Fatalf("Failed to enqueue task: %v", err)
	}
	fmt.Printf("Task submitted to the queue. Job ID: %s\n\n", jobID)

	results, err := tasks.NewResultStore(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to result backend: %v", err)
	}
	defer results.Close()

	result, err := results.Wait(context.Background(), jobID, resultWait)
	if err != nil {
		if errors.Is(err, tasks.ErrWaitTimeout) {
			fmt.Println("No result arrived in time (is the worker running?)")
			fmt.Println("Make sure Redis is up and a worker is consuming the queue:")
			fmt.Println("  go run cmd/worker/main.go")
			return
		}
		log.Fatalf("Failed to fetch task result: %v", err)
	}

	fmt.Println("Task result:")
	fmt.Printf("  status:       %s\n", result.Status)
	fmt.Printf("  product_id:   %d\n", result.ProductID)
	if result.Status == tasks.StatusSuccess {
		fmt.Printf("  product_name: %s\n", result.ProductName)
		fmt.Printf("  category:     %s\n", result.Category)
		fmt.Printf("  price:        %s\n", result.Price)
	} else {
		fmt.Printf("  message:      %s\n", result.Message)
	}
}
