// If you are AI: This is the main entrypoint for the amfgate server.
// It handles configuration loading, server startup, and graceful shutdown.

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"amfgate/internal/config"
	"amfgate/internal/server"
)

// main is the entrypoint for the amfgate server.
// It loads configuration, starts the server, and handles graceful shutdown.
func main() {
	configPath := flag.String("config", "configs/amfgate.example.yaml", "Path to configuration file (.yaml or .toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	srv := server.New(cfg)
	log.Printf("Serving remoting on :%d%s and :%d%s, health on :%d",
		cfg.Server.HTTPPort, cfg.AMF.GatewayPath, cfg.Server.HTTPPort, cfg.AMF.WSPath, cfg.Server.HealthPort)

	if err := server.Run(context.Background(), srv); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}

	log.Println("Server shut down cleanly")
}
