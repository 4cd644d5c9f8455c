package main

import (
	"context"
	"os"
	"time"

	"storefront/config"
	"storefront/internal/clients"
	"storefront/internal/delivery"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Storefront Service...")

	catalogClient := clients.NewCatalogHTTPClient(
		cfg.CatalogURL,
		time.Duration(cfg.ClientTimeoutSeconds)*time.Second,
		logger,
	)
	logger.Infof("Catalog client initialized for target: %s", cfg.CatalogURL)

	// Cart snapshots are optional: without CART_DATABASE_URL the cart
	// lives purely in memory.
	var snapshotStore domain.CartSnapshotStore
	if cfg.CartDatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.CartDatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to cart snapshot database: %v", err)
		}
		defer database.Close()
		if err := repository.EnsureSchema(database); err != nil {
			logger.Fatalf("Failed to prepare cart snapshot schema: %v", err)
		}
		snapshotStore = repository.NewPostgresCartSnapshotStore(database, logger)
		logger.Info("Cart snapshot store initialized.")
	}

	// --- Dependency Injection ---
	cartUseCase := usecase.NewCartUseCase(snapshotStore, cfg.CartStoreName, logger)
	pager := usecase.NewPager(catalogClient, cfg.PageSize, logger)
	logger.Info("Use cases initialized.")

	seedInitialPage(pager, catalogClient, cfg.PageSize, logger)

	catalogHandler := delivery.NewCatalogHandler(pager, catalogClient, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	logger.Info("Routes registered.")

	// --- Start Server ---
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}

// seedInitialPage pre-loads the first catalog page so the first view
// renders without an extra round trip. A failed seed is not fatal: the
// pager starts empty and the next fetch retries.
func seedInitialPage(pager usecase.Pager, catalog domain.CatalogSource, pageSize int, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, err := catalog.List(ctx, 0, pageSize)
	if err != nil {
		logger.Warnf("Failed to seed initial catalog page, starting empty: %v", err)
		return
	}
	pager.Seed(page)
}
