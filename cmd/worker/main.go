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
)

func main() {
	workers := flag.Int("workers", 4, "Number of concurrent task consumers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Worker process logs every query it runs otherwise
	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	results, err := tasks.NewResultStore(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to result backend: %v", err)
	}
	defer results.Close()

	products := catalog.NewProductRepository(database.GetDB())

	worker, err := tasks.NewWorker(&cfg.Broker, products, results)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}

	done := make(chan struct{})
	go func() {
		worker.Run(*workers)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if waitExit(quit, done) {
		log.Println("Shutting down worker...")
		worker.Close()
		<-done
		return
	}

	// Consumers stopped on their own, usually a dropped broker connection.
	log.Println("Task consumption stopped, exiting")
	worker.Close()
}

// waitExit blocks until either a shutdown signal arrives or the consumers
// finish. It reports true when a signal triggered the exit.
func waitExit(quit <-chan os.Signal, done <-chan struct{}) bool {
	select {
	case <-quit:
		return true
	case <-done:
		return false
	}
}
