package main

import (
	"log"

	"ikigai/internal/config"
	"ikigai/internal/container"
	"ikigai/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer c.Close()

	apiServer := ui.NewServer(c.Sessions, c.Reports, c.Payments, cfg.Server.GinMode)
	adminApp := ui.NewAdminApp(c.Stats, c.Exporter)

	var g errgroup.Group
	g.Go(func() error {
		return apiServer.Run(":" + cfg.Server.Port)
	})
	g.Go(func() error {
		return adminApp.Run(":" + cfg.Server.AdminPort)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
