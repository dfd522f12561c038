package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/simplebanking/banking-system/internal/api/handler"
	"github.com/simplebanking/banking-system/internal/api/middleware"
	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/service"
	"github.com/simplebanking/banking-system/internal/infrastructure/config"
	mongodb "github.com/simplebanking/banking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/simplebanking/banking-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("banking"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)
	idemStore := redisdb.NewIdempotencyStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, cfg.StarterBalance, log)
	balanceService := service.NewBalanceService(ledgerRepo, idemStore, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(balanceService)
	transferHandler := handler.NewTransferHandler(balanceService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	ownerOnly := middleware.RBAC(domain.RoleOwner)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	// Admins provision owners; everything else on the directory is
	// owner-facing.
	v1.POST("/users", userHandler.Create, adminOnly)
	v1.GET("/users", userHandler.List, ownerOnly)
	v1.GET("/users/me", userHandler.Me, ownerOnly)

	// Balance operations are strictly owner-only. The services enforce the
	// same rule again so a routing mistake cannot widen access.
	v1.GET("/accounts/:id", accountHandler.Get, ownerOnly)
	v1.POST("/accounts/:id/deposit", accountHandler.Deposit, ownerOnly)
	v1.POST("/accounts/:id/withdraw", accountHandler.Withdraw, ownerOnly)
	v1.POST("/transfers", transferHandler.Create, ownerOnly)

	return e
}
