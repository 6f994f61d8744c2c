package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/preflists/config"
	"github.com/epeers/preflists/docs"
	"github.com/epeers/preflists/internal/alphavantage"
	"github.com/epeers/preflists/internal/cache"
	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/handlers"
	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/middleware"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Preference Lists API
// @version 1.0
// @description Securities, preference lists and time-weighted scoring.
// @BasePath /
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection and schema
	db, err := database.New(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	m := metrics.NewRegistry()

	// Earnings sync is optional
	var avClient *alphavantage.Client
	if cfg.AVKey != "" {
		avClient = alphavantage.NewClient(cfg.AVKey, cfg.AVRequestsPerMin)
	} else {
		log.Warn("AV_KEY not set, earnings sync disabled")
	}

	// Catalog index, loaded once up front
	resolver := repository.NewResolver(db)
	catalogRepo := repository.NewCatalogRepository(db, resolver)
	catalog := cache.NewCatalog(catalogRepo)
	keys := cache.NewCachedResolver(catalog, resolver)

	// Initialize repositories
	securityRepo := repository.NewSecurityRepository(db, keys)
	changeRepo := repository.NewListChangeRepository(db, keys)
	listRepo := repository.NewListRepository(db)
	earningsRepo := repository.NewEarningsRepository(db, keys)

	// Initialize services
	catalogSvc := services.NewCatalogService(catalogRepo, catalog, m)
	pointsSvc := services.NewPointsService(changeRepo, m, cfg.Location, cfg.PointsWindowDays, nil)
	earningsSvc := services.NewEarningsService(earningsRepo, securityRepo, avClient, m, cfg.Location, nil)
	listSvc := services.NewListService(listRepo, securityRepo, earningsSvc, cfg.Location)
	securitySvc := services.NewSecurityService(securityRepo, changeRepo, listRepo, pointsSvc, earningsSvc, m, cfg.Location)
	importSvc := services.NewImportService(securitySvc)

	stats, err := catalogSvc.Reload(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Infof("Catalog loaded: %s", stats)

	// Initialize handlers
	listHandler := handlers.NewListHandler(listSvc)
	securityHandler := handlers.NewSecurityHandler(securitySvc, earningsSvc)
	pointsHandler := handlers.NewPointsHandler(pointsSvc)
	adminHandler := handlers.NewAdminHandler(catalogSvc, importSvc, earningsSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID(), middleware.Metrics(m))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Read routes
	router.GET("/lists/:ticker", listHandler.Get)
	router.GET("/lists/:ticker/children", listHandler.Children)
	router.GET("/lists/:ticker/history", listHandler.History)
	router.GET("/securities", securityHandler.Search)
	router.GET("/securities/all", securityHandler.All)
	router.GET("/securities/:ticker", securityHandler.Detail)
	router.GET("/securities/:ticker/earnings", securityHandler.Earnings)
	router.GET("/points", pointsHandler.Points)
	router.GET("/points/weighted", pointsHandler.Weighted)

	// Write routes
	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN not set, write endpoints are unauthenticated")
	}
	requireAdmin := middleware.RequireAdminToken(cfg.AdminToken)

	write := router.Group("/", requireAdmin)
	write.POST("/securities", securityHandler.Create)
	write.POST("/securities/:ticker/alt-names", securityHandler.AddAltName)
	write.POST("/earnings", securityHandler.AddEarningsDate)
	write.POST("/list-changes", securityHandler.AddListChange)

	// Admin routes
	admin := router.Group("/admin", requireAdmin)
	admin.POST("/weights", adminHandler.AddWeight)
	admin.POST("/countries", adminHandler.AddCountry)
	admin.POST("/currencies", adminHandler.AddCurrency)
	admin.POST("/lists", adminHandler.AddList)
	admin.POST("/events", adminHandler.AddEvent)
	admin.POST("/catalog/reload", adminHandler.ReloadCatalog)
	admin.POST("/list-changes/import", adminHandler.ImportListChanges)
	admin.POST("/earnings/sync/:ticker", adminHandler.SyncEarnings)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s (%s store)", cfg.Port, db.Driver())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
