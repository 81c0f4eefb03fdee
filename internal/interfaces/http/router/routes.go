package router

import (
	"github.com/finmanager/backend/internal/infrastructure/auth"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/interfaces/http/handler"
	"github.com/finmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the resource handlers served by the API
type Handlers struct {
	Auth       *handler.AuthHandler
	Company    *handler.CompanyHandler
	Department *handler.DepartmentHandler
	Customer   *handler.CustomerHandler
	Supplier   *handler.SupplierHandler
	Type       *handler.TypeHandler
	Purchase   *handler.PurchaseHandler
	Sale       *handler.SaleHandler
	Statistics *handler.StatisticsHandler
	System     *handler.SystemHandler
}

// Options carries everything the HTTP engine is assembled from
type Options struct {
	HTTP       config.HTTPConfig
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Users      middleware.UserResolver
	Metrics    *middleware.HTTPMetrics
	Handlers   Handlers
}

// New builds the gin engine with the middleware stack and every route
func New(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := opts.Handlers

	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request ID must exist before the logger reads it,
	// and recovery must wrap everything that can panic.
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
	}
	corsConfig := middleware.DefaultCORSConfig()
	if len(opts.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = opts.HTTP.CORSAllowOrigins
	}
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Secure())
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}

	// Public endpoints
	engine.GET("/", h.System.Root)
	engine.GET("/health", h.System.Health)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	engine.GET("/auth/pubkey", h.Auth.PublicKey)
	credentials := engine.Group("/auth")
	if opts.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(opts.HTTP.AuthRateLimitRequests, opts.HTTP.AuthRateLimitWindow)
		credentials.Use(middleware.RateLimit(limiter))
		log.Info("Auth rate limiting enabled",
			zap.Int64("requests", opts.HTTP.AuthRateLimitRequests),
			zap.Duration("window", opts.HTTP.AuthRateLimitWindow),
		)
	}
	credentials.POST("/register", h.Auth.Register)
	credentials.POST("/login", h.Auth.Login)

	// Authenticated endpoints
	r := NewRouter(engine)
	jwtConfig := middleware.DefaultJWTConfig(opts.JWTService, opts.Users)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.POST("/change-password", h.Auth.ChangePassword)
	authRoutes.PUT("/update-profile", h.Auth.UpdateProfile)

	companyRoutes := NewDomainGroup("companies", "/companies")
	companyRoutes.GET("", h.Company.List)
	companyRoutes.POST("", h.Company.Create)
	companyRoutes.GET("/:id", h.Company.Get)
	companyRoutes.PUT("/:id", h.Company.Update)
	companyRoutes.DELETE("/:id", h.Company.Delete)

	departmentRoutes := NewDomainGroup("departments", "/departments")
	departmentRoutes.GET("", h.Department.List)
	departmentRoutes.POST("", h.Department.Create)
	departmentRoutes.GET("/:id", h.Department.Get)
	departmentRoutes.PUT("/:id", h.Department.Update)
	departmentRoutes.DELETE("/:id", h.Department.Delete)

	customerRoutes := NewDomainGroup("customers", "/customers")
	customerRoutes.GET("", h.Customer.List)
	customerRoutes.POST("", h.Customer.Create)
	customerRoutes.GET("/:id", h.Customer.Get)
	customerRoutes.PUT("/:id", h.Customer.Update)
	customerRoutes.DELETE("/:id", h.Customer.Delete)

	supplierRoutes := NewDomainGroup("suppliers", "/suppliers")
	supplierRoutes.GET("", h.Supplier.List)
	supplierRoutes.GET("/count", h.Supplier.Count)
	supplierRoutes.POST("", h.Supplier.Create)
	supplierRoutes.GET("/:id", h.Supplier.Get)
	supplierRoutes.PUT("/:id", h.Supplier.Update)
	supplierRoutes.DELETE("/:id", h.Supplier.Delete)

	typeRoutes := NewDomainGroup("types", "/types")
	typeRoutes.GET("", h.Type.List)
	typeRoutes.POST("", h.Type.Create)
	typeRoutes.GET("/:id", h.Type.Get)
	typeRoutes.PUT("/:id", h.Type.Update)
	typeRoutes.DELETE("/:id", h.Type.Delete)

	purchaseRoutes := NewDomainGroup("purchases", "/purchases")
	purchaseRoutes.GET("", h.Purchase.List)
	purchaseRoutes.POST("", h.Purchase.Create)
	purchaseRoutes.GET("/:id", h.Purchase.Get)
	purchaseRoutes.PUT("/:id", h.Purchase.Update)
	purchaseRoutes.DELETE("/:id", h.Purchase.Delete)

	saleRoutes := NewDomainGroup("sales", "/sales")
	saleRoutes.GET("", h.Sale.List)
	saleRoutes.POST("", h.Sale.Create)
	saleRoutes.POST("/images", h.Sale.UploadImage)
	saleRoutes.GET("/:id", h.Sale.Get)
	saleRoutes.PUT("/:id", h.Sale.Update)
	saleRoutes.DELETE("/:id", h.Sale.Delete)
	saleRoutes.POST("/:id/image", h.Sale.AttachImage)

	statisticsRoutes := NewDomainGroup("statistics", "/statistics")
	statisticsRoutes.GET("/summary", h.Statistics.Summary)
	statisticsRoutes.GET("/trend", h.Statistics.Trend)
	statisticsRoutes.GET("/top-customers", h.Statistics.TopCustomers)

	r.Register(authRoutes).
		Register(companyRoutes).
		Register(departmentRoutes).
		Register(customerRoutes).
		Register(supplierRoutes).
		Register(typeRoutes).
		Register(purchaseRoutes).
		Register(saleRoutes).
		Register(statisticsRoutes)
	r.Setup()

	return engine
}
