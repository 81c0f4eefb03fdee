// Command server runs the finance manager HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/finmanager/backend/internal/application/catalog"
	identityapp "github.com/finmanager/backend/internal/application/identity"
	partnerapp "github.com/finmanager/backend/internal/application/partner"
	reportapp "github.com/finmanager/backend/internal/application/report"
	tradeapp "github.com/finmanager/backend/internal/application/trade"
	"github.com/finmanager/backend/internal/infrastructure/auth"
	"github.com/finmanager/backend/internal/infrastructure/cache"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/infrastructure/migration"
	"github.com/finmanager/backend/internal/infrastructure/persistence"
	"github.com/finmanager/backend/internal/infrastructure/storage"
	"github.com/finmanager/backend/internal/interfaces/http/handler"
	"github.com/finmanager/backend/internal/interfaces/http/middleware"
	"github.com/finmanager/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		logger.Sync(log)
	}()

	log.Info("Starting finance manager backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(&cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	keys, err := auth.LoadOrGenerateKeyPair(cfg.Keys.Dir, log)
	if err != nil {
		log.Fatal("Failed to load RSA key pair", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	statsCache, err := cache.NewStatisticsCacheFactory(cfg.Redis, cfg.Statistics.CacheTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create statistics cache", zap.Error(err))
	}
	defer func() {
		_ = statsCache.Close()
	}()

	images, err := storage.NewImageStorage(&cfg.Storage, cfg.Uploads.MaxSizeBytes, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	typeRepo := persistence.NewGormTypeRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	statisticsRepo := persistence.NewGormStatisticsRepository(db.DB)

	// Services
	authService := identityapp.NewAuthService(userRepo, keys, jwtService, log)
	companyService := partnerapp.NewCompanyService(companyRepo, log)
	departmentService := partnerapp.NewDepartmentService(departmentRepo, companyRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, companyRepo, departmentRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	typeService := catalogapp.NewTypeService(typeRepo, log)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, typeRepo, customerRepo, supplierRepo, statsCache, log)
	saleService := tradeapp.NewSaleService(saleRepo, typeRepo, customerRepo, images, statsCache, log)
	statisticsService := reportapp.NewStatisticsService(statisticsRepo, statsCache, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Options{
		HTTP:       cfg.HTTP,
		Logger:     log,
		JWTService: jwtService,
		Users:      authService,
		Metrics:    middleware.NewHTTPMetrics(),
		Handlers: router.Handlers{
			Auth:       handler.NewAuthHandler(authService),
			Company:    handler.NewCompanyHandler(companyService),
			Department: handler.NewDepartmentHandler(departmentService),
			Customer:   handler.NewCustomerHandler(customerService),
			Supplier:   handler.NewSupplierHandler(supplierService),
			Type:       handler.NewTypeHandler(typeService),
			Purchase:   handler.NewPurchaseHandler(purchaseService),
			Sale:       handler.NewSaleHandler(saleService),
			Statistics: handler.NewStatisticsHandler(statisticsService),
			System:     handler.NewSystemHandler(db),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies pending migrations on a dedicated connection, since
// closing the migrator closes the connection it runs on
func migrateSchema(cfg *config.DatabaseConfig, log *zap.Logger) error {
	m, err := migration.NewFromURL(cfg.MigrateURL(), cfg.Driver, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
