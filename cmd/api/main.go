package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digital-city/internal/cart"
	"digital-city/internal/catalog"
	"digital-city/internal/checkout"
	"digital-city/internal/config"
	"digital-city/internal/database"
	"digital-city/internal/handler"
	"digital-city/internal/repository"
	"digital-city/internal/router"
	"digital-city/internal/service"
	"digital-city/internal/session"
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
	logger.Info().Msg("starting digital-city API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(cfg.Catalog.CatalogPath, cfg.Catalog.RegionsPath, logger)
	catalogLoader := fileLoader

	if cfg.Catalog.S3Enabled {
		s3Loader, err := catalog.NewS3Loader(
			ctx,
			cfg.Catalog.S3Bucket,
			cfg.Catalog.S3Region,
			cfg.Catalog.S3Prefix,
			cfg.Catalog.CatalogPath,
			cfg.Catalog.RegionsPath,
			logger,
		)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			catalogLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, logger)
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}

	// Load the catalog and shipping regions once at startup
	cat, err := catalogLoader.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	regions, err := catalogLoader.LoadRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load regions: %w", err)
	}
	logger.Info().
		Int("products", len(cat.Products)).
		Int("categories", len(cat.Categories)).
		Int("regions", len(regions)).
		Msg("catalog loaded")

	// Initialize the order repository
	var orderRepo repository.OrderRepository
	switch cfg.Store.OrderBackend {
	case config.OrderStorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, repository.Schema); err != nil {
			return fmt.Errorf("failed to ensure order schema: %w", err)
		}
		orderRepo = repository.NewPgOrderRepository(pool, logger)
	default:
		orderRepo, err = repository.NewFileOrderRepository(cfg.Store.OrdersFile, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize order store: %w", err)
		}
	}

	// Initialize services
	productService := service.NewProductService(cat, regions, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize the session manager; each session gets its own cart and
	// checkout wizard over the shared pricing policy and order store
	pricing := cart.Pricing{
		FreeShippingThreshold: cfg.Store.FreeShippingThreshold,
		ShippingFee:           cfg.Store.ShippingFee,
	}
	submitDelay := time.Duration(cfg.Checkout.SubmitDelayMillis) * time.Millisecond
	idGen := checkout.NewIDGenerator()
	sessionTTL := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	sessions := session.NewManager(func(c *cart.Store) *checkout.Wizard {
		return checkout.NewWizard(c, regions, orderRepo, pricing, idGen, submitDelay, logger)
	}, sessionTTL, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(productService, pricing, logger)
	checkoutHandler := handler.NewCheckoutHandler(logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, checkoutHandler, orderHandler, sessions, logger)

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
