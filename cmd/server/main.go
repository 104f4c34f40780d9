// Command main is the entry point for the socialnet API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialnet/internal/bootstrap"
	"socialnet/internal/config"
	"socialnet/internal/server"
)

const shutdownTimeout = 10 * time.Second

// @title Socialnet API
// @version 1.0
// @description Users, thoughts, reactions and friend lists.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := bootstrap.InitTracing(cfg, "socialnet-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, sigs, shutdownTracing); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until a signal arrives, then shuts it down and flushes
// traces. It returns only after both have finished.
func serve(srv lifecycle, sigs <-chan os.Signal, flushTraces func(context.Context) error) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-sigs

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := flushTraces(ctx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		return err
	}
	<-done
	return nil
}
