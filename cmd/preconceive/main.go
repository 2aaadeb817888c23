// Package main runs the preconceive HTTP server: a small web backend that
// returns one randomly chosen precon deck from Archidekt.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jarnr/preconceive/internal/api"
	"github.com/jarnr/preconceive/internal/archidekt"
	"github.com/jarnr/preconceive/internal/catalog"
	"github.com/jarnr/preconceive/internal/config"
	"github.com/jarnr/preconceive/internal/picker"
)

var (
	port       = flag.Int("port", 0, "Listen port (overrides config)")
	configPath = flag.String("config", "", "Path to config.toml")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	client := archidekt.NewClient(archidekt.ClientOptions{})
	cache := catalog.NewCache(catalog.DefaultTTL)
	service := picker.NewService(client, cache)

	server := api.NewServer(&api.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, service)

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
