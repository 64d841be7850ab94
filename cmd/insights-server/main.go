// Package main Call Insights API Server
//
//	@title			Call Insights API
//	@version		1.0
//	@description	Failure analytics over automated call evaluations: keywords, categories, recurring patterns and trends
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "call-insights/docs" // This imports the docs package to initialize swagger
	"call-insights/internal/config"
	"call-insights/internal/server"
)

func main() {
	log.Println("Starting Call Insights Server...")

	srv, err := server.NewServer(config.Load())
	if err != nil {
		log.Fatalf("Failed to configure server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
