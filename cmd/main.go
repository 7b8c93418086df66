package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"licentra/internal/caching"
	"licentra/internal/config"
	"licentra/internal/handlers"
	"licentra/internal/jobs/background"
	"licentra/internal/middleware"
	"licentra/internal/ratelimit"
	"licentra/internal/repositories"
	"licentra/internal/services"
	"licentra/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis is optional. Without it the license cache is disabled and rate
	// limiting falls back to per-process windows.
	var cacheSvc caching.CacheService
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	// Create repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	apiKeyRepo := repositories.NewAPIKeyRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	planRepo := repositories.NewPlanRepo(pool)
	licenseRepo := repositories.NewLicenseRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	activationRepo := repositories.NewActivationRepo(pool)
	auditLogsRepo := repositories.NewAuditLogsRepo(pool)

	// Create services
	auditSvc := services.NewAuditService(auditLogsRepo)
	apiKeySvc := services.NewAPIKeyService(apiKeyRepo, auditSvc)
	productSvc := services.NewProductService(productRepo, auditSvc)
	planSvc := services.NewPlanService(planRepo, productRepo, auditSvc)
	licenseSvc := services.NewLicenseService(licenseRepo, planRepo, userRepo, activationRepo, auditSvc, cacheSvc)
	userSvc := services.NewUserService(userRepo, auditSvc)
	activationSvc := services.NewActivationService(activationRepo)
	validationSvc := services.NewValidationService(licenseSvc, userSvc, activationSvc, auditSvc)

	// Rate limiter selection
	var limiter ratelimit.Limiter
	var memoryLimiter *ratelimit.MemoryLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		memoryLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		limiter = memoryLimiter
	}

	// Create handlers
	tenantHandlers := handlers.NewTenantHandlers(tenantRepo, apiKeySvc, auditSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	planHandlers := handlers.NewPlanHandlers(planSvc)
	licenseHandlers := handlers.NewLicenseHandlers(licenseSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	auditLogsHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	validateHandlers := handlers.NewValidateHandlers(validationSvc, licenseSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints, unauthenticated
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", healthHandlers.Metrics)

	// Admin surface, authenticated with the platform admin key. Tenant-scoped
	// routes additionally require the X-Tenant-ID header.
	admin := e.Group("/admin", middleware.AdminAuth(cfg.AdminAPIKey))

	admin.POST("/tenants", tenantHandlers.CreateTenant)
	admin.GET("/tenants", tenantHandlers.ListTenants)
	admin.POST("/tenants/:id/keys", tenantHandlers.CreateAPIKey)
	admin.GET("/tenants/:id/keys", tenantHandlers.ListAPIKeys)
	admin.DELETE("/tenants/:id/keys/:keyId", tenantHandlers.RevokeAPIKey)

	admin.POST("/products", productHandlers.CreateProduct)
	admin.GET("/products", productHandlers.ListProducts)
	admin.GET("/products/:id", productHandlers.GetProduct)
	admin.PUT("/products/:id", productHandlers.UpdateProduct)
	admin.DELETE("/products/:id", productHandlers.DeleteProduct)

	admin.POST("/plans", planHandlers.CreatePlan)
	admin.GET("/plans", planHandlers.ListPlans)
	admin.GET("/plans/:id", planHandlers.GetPlan)
	admin.PUT("/plans/:id", planHandlers.UpdatePlan)
	admin.DELETE("/plans/:id", planHandlers.DeletePlan)

	admin.POST("/licenses", licenseHandlers.CreateLicense)
	admin.GET("/licenses", licenseHandlers.ListLicenses)
	admin.GET("/licenses/:id", licenseHandlers.GetLicense)
	admin.POST("/licenses/:id/assign", licenseHandlers.AssignLicense)
	admin.PATCH("/licenses/:id/status", licenseHandlers.UpdateLicenseStatus)
	admin.GET("/licenses/:id/usage", licenseHandlers.GetLicenseUsage)

	admin.POST("/users", userHandlers.CreateUser)
	admin.GET("/users", userHandlers.ListUsers)

	admin.GET("/audit-logs", auditLogsHandlers.ListAuditLogs)

	// Tenant surface, authenticated with a tenant API key and rate limited
	// per tenant.
	api := e.Group("", middleware.TenantAuth(apiKeySvc), middleware.RateLimit(limiter))
	api.POST("/validate", validateHandlers.Validate)
	api.GET("/licenses/:key", validateHandlers.Introspect)

	scheduler := background.NewJobScheduler(apiKeyRepo, activationSvc, memoryLimiter)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer scheduler.Stop()

	log.Printf("Starting server on port %d", cfg.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
