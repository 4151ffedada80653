package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	certapp "github.com/cylserv/backend/internal/application/cert"
	docsapp "github.com/cylserv/backend/internal/application/docs"
	fleetapp "github.com/cylserv/backend/internal/application/fleet"
	partnerapp "github.com/cylserv/backend/internal/application/partner"
	"github.com/cylserv/backend/internal/infrastructure/config"
	"github.com/cylserv/backend/internal/infrastructure/logger"
	"github.com/cylserv/backend/internal/infrastructure/persistence"
	"github.com/cylserv/backend/internal/interfaces/http/handler"
	"github.com/cylserv/backend/internal/interfaces/http/middleware"
	"github.com/cylserv/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cylinder service backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	// Repositories
	cylinderRepo := persistence.NewGormCylinderRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	certificateRepo := persistence.NewGormCertificateRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	relationCounter := persistence.NewGormRelationCounter(db.DB)

	// Application services
	cylinderService := fleetapp.NewCylinderService(
		persistence.NewGormFleetScope(db.DB), cylinderRepo, customerRepo, log)
	certificateService := certapp.NewCertificateService(
		persistence.NewGormCertScope(db.DB), certificateRepo, cylinderRepo, customerRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, relationCounter, log)
	documentService := docsapp.NewDocumentService(
		persistence.NewGormDocsScope(db.DB), quoteRepo, invoiceRepo, customerRepo, log)

	// HTTP handlers
	cylinderHandler := handler.NewCylinderHandler(cylinderService)
	certificateHandler := handler.NewCertificateHandler(certificateService)
	customerHandler := handler.NewCustomerHandler(customerService)
	documentHandler := handler.NewDocumentHandler(documentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(),
	)

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)
	partnerRoutes.GET("/customers/:id/cylinders", cylinderHandler.ListByCustomer)
	partnerRoutes.GET("/customers/:id/certificates", certificateHandler.ListByCustomer)
	partnerRoutes.GET("/customers/:id/quotes", documentHandler.ListQuotesByCustomer)
	partnerRoutes.GET("/customers/:id/invoices", documentHandler.ListInvoicesByCustomer)
	r.Register(partnerRoutes)

	fleetRoutes := router.NewDomainGroup("fleet", "/fleet")
	fleetRoutes.POST("/cylinders", cylinderHandler.Add)
	fleetRoutes.POST("/cylinders/bulk", cylinderHandler.BulkAdd)
	fleetRoutes.POST("/cylinders/bulk-delete", cylinderHandler.BulkDelete)
	fleetRoutes.POST("/cylinders/bulk-refill", cylinderHandler.BulkRefill)
	fleetRoutes.GET("/cylinders", cylinderHandler.List)
	fleetRoutes.GET("/cylinders/due", cylinderHandler.DueForService)
	fleetRoutes.GET("/cylinders/:id", cylinderHandler.GetByID)
	r.Register(fleetRoutes)

	certRoutes := router.NewDomainGroup("cert", "/cert")
	certRoutes.POST("/certificates", certificateHandler.IssueBatch)
	certRoutes.GET("/certificates/:number", certificateHandler.GetByNumber)
	certRoutes.DELETE("/certificates/:number", certificateHandler.DeleteByNumber)
	r.Register(certRoutes)

	docsRoutes := router.NewDomainGroup("docs", "/docs")
	docsRoutes.POST("/quotes", documentHandler.CreateQuote)
	docsRoutes.DELETE("/quotes/:id", documentHandler.DeleteQuote)
	docsRoutes.POST("/invoices", documentHandler.CreateInvoice)
	docsRoutes.POST("/invoices/:id/pay", documentHandler.MarkInvoicePaid)
	docsRoutes.DELETE("/invoices/:id", documentHandler.DeleteInvoice)
	r.Register(docsRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
