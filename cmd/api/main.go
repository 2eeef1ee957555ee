package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"licenseshop/internal/cart"
	"licenseshop/internal/config"
	"licenseshop/internal/database"
	"licenseshop/internal/handler"
	"licenseshop/internal/repository"
	"licenseshop/internal/router"
	"licenseshop/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting licenseshop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis for cart storage. An unreachable Redis falls back to
	// in-process storage so the catalog stays up.
	var cartStore cart.Store
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory cart storage")
		cartStore = cart.NewMemoryStore()
	} else {
		defer redisClient.Close()
		cartStore = cart.NewRedisStore(redisClient, logger)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	variantRepo := repository.NewVariantRepository(pool, logger)
	skuRepo := repository.NewSKURepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	licenseRepo := repository.NewLicenseRepository(pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	catalogService := service.NewCatalogService(productRepo, variantRepo, skuRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)
	licenseService := service.NewLicenseService(licenseRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, catalogService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	licenseHandler := handler.NewLicenseHandler(licenseService, logger)
	cartHandler := handler.NewCartHandler(cartStore, productService, catalogService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		catalogHandler,
		orderHandler,
		licenseHandler,
		cartHandler,
		cfg.Auth.AdminAPIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
