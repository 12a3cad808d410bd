package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aerostock/aerostock/config"
	"github.com/aerostock/aerostock/internal/api"
	"github.com/aerostock/aerostock/internal/api/handlers"
	"github.com/aerostock/aerostock/internal/core/blueprint"
	"github.com/aerostock/aerostock/internal/core/inventory"
	"github.com/aerostock/aerostock/internal/core/validation"
	"github.com/aerostock/aerostock/internal/logger"
	"github.com/aerostock/aerostock/internal/storage/upstream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	// Connect to the source API
	client, err := upstream.NewClient(&cfg.Source)
	if err != nil {
		logger.Error("Failed to configure source client", "error", err)
		os.Exit(1)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		logger.Warn("Source API not reachable yet", "url", client.BaseURL(), "error", err)
	} else {
		logger.Info("Connected to source API", "url", client.BaseURL())
	}
	cancelPing()

	// Initialize services
	blueprintService := blueprint.NewService()
	validator := validation.NewValidator()
	inventoryService := inventory.NewService(inventory.NewRepository(client), blueprintService, validator, &cfg.Inventory)

	// Warm the snapshot; queries retry on their own if this fails
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 15*time.Second)
	if _, err := inventoryService.Refresh(warmCtx); err != nil {
		logger.Warn("Initial inventory load failed", "error", err)
	}
	cancelWarm()

	// Initialize handlers
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	blueprintHandler := handlers.NewBlueprintHandler(blueprintService)

	// Setup router
	router := api.NewRouter(logger.Get(), inventoryHandler, blueprintHandler)
	engine := router.Setup(cfg.Server.Mode)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting server", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
	if err := serve(srv, ln, quit, 10*time.Second); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// serve runs srv on ln until quit fires, then waits up to grace for
// in-flight requests before returning.
func serve(srv *http.Server, ln net.Listener, quit <-chan os.Signal, grace time.Duration) error {
	drained := make(chan error, 1)
	go func() {
		<-quit
		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		drained <- srv.Shutdown(ctx)
	}()

	// Serve returns as soon as Shutdown begins
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-drained
}
