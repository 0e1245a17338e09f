package main

import (
	"context"
	"log"

	"legalbot-be/internal/bootstrap"
	"legalbot-be/internal/config"
	"legalbot-be/internal/server"
	"legalbot-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Close()

	// 3. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	log.Println("Background: Starting Dispatch Service...")
	if err := container.DispatchService.Dispatch(context.Background()); err != nil {
		log.Panicf("Unable to start dispatch service: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
