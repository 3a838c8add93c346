// Command courtside-api serves the derived stats over a read-only HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prettygood/courtside/internal/api/rest"
	"github.com/prettygood/courtside/internal/config"
)

const serviceName = "courtside-api"

func main() {
	log.Printf("Starting %s", serviceName)

	cfg := config.Load()

	st, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	log.Printf("✓ Opened %s store", cfg.StoreBackend)

	server := rest.NewServer(cfg.APIPort, st)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.APIPort)
		if err := server.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API listening on :%s", cfg.APIPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
