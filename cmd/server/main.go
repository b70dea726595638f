package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pos-backend/internal/auth"
	"pos-backend/internal/cache"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/db"
	"pos-backend/internal/handlers"
	"pos-backend/internal/health"
	h "pos-backend/internal/http"
	"pos-backend/internal/live"
	"pos-backend/internal/middleware"
	"pos-backend/internal/repositories"
	"pos-backend/internal/services"
	"pos-backend/internal/storage"
	"pos-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	stockEntryRepo := repositories.NewStockEntryRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	lenderRepo := repositories.NewLenderRepository(pool)

	// Optional invoice archive (S3-compatible; nil when not configured)
	archive := storage.NewInvoiceArchive(cfg)
	if archive != nil {
		log.Printf("[Archive] Invoice archive enabled (bucket %s)", cfg.Archive.Bucket)
	} else {
		log.Println("[Archive] Invoice archive disabled")
	}

	// Live dashboard hub
	hub := live.NewHub()

	// Initialize services
	documentService := services.NewDocumentService(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	catalogService := services.NewCatalogService(productRepo, stockEntryRepo)
	salesService := services.NewSalesService(saleRepo, customerRepo, productRepo, documentService, archive, hub)
	customerService := services.NewCustomerService(customerRepo, saleRepo, documentService, archive)
	lenderService := services.NewLenderService(lenderRepo, productRepo)
	reportService := services.NewReportService(saleRepo, customerRepo, productRepo, documentService)

	// System metrics collector (CPU/memory gauges for Prometheus)
	collector := services.NewMetricsCollector()
	collector.Start()
	defer collector.Stop()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(catalogService)
	saleHandler := handlers.NewSaleHandler(salesService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	lenderHandler := handlers.NewLenderHandler(lenderService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		productHandler,
		saleHandler,
		customerHandler,
		lenderHandler,
		reportHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
