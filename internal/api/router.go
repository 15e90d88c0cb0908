package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/signalist/signalist-api/docs"
	"github.com/signalist/signalist-api/internal/api/handler"
	"github.com/signalist/signalist-api/internal/api/middleware"
	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/service"
	"github.com/signalist/signalist-api/internal/infrastructure/auth"
	"github.com/signalist/signalist-api/internal/infrastructure/config"
	mongodb "github.com/signalist/signalist-api/internal/infrastructure/db/mongo"
	redisdb "github.com/signalist/signalist-api/internal/infrastructure/db/redis"
	"github.com/signalist/signalist-api/internal/infrastructure/quotes"
)

// Dependencies carries the explicitly constructed service context handed to
// the router. Nothing here is a process-global; main owns init and teardown.
type Dependencies struct {
	Config      *config.Config
	Logger      zerolog.Logger
	MongoClient *mongo.Client
	DB          *mongo.Database
	Redis       *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("signalist"))

	// --- Identity resolution: once per request, ahead of every guard ---
	verifier := auth.NewJWTVerifier(deps.Config.Session.Secret)
	e.Use(middleware.Identity(middleware.IdentityConfig{
		Verifier:      verifier,
		SessionCookie: deps.Config.Session.SessionCookie,
		GuestCookie:   deps.Config.Session.GuestCookie,
	}))

	// --- Page guard (API and operational endpoints are exempt) ---
	e.Use(middleware.RouteGuard(middleware.RouteGuardConfig{
		GuestCookie: deps.Config.Session.GuestCookie,
		ExemptPrefixes: []string{
			"/api", "/health", "/metrics", "/swagger",
			"/sign-in", "/sign-up", "/assets",
		},
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	watchlistRepo := mongodb.NewWatchlistRepository(deps.DB)
	auditRepo := mongodb.NewAuditRepository(deps.DB)
	txRunner := mongodb.NewTxRunner(deps.MongoClient)

	quoteCache := redisdb.NewQuoteCache(deps.Redis, deps.Config.Finnhub.CacheTTL)
	finnhub := quotes.NewFinnhubClient(deps.Config.Finnhub.BaseURL, deps.Config.Finnhub.APIKey, nil)
	quoteProvider := quotes.NewCachedProvider(finnhub, quoteCache)

	watchlistService := service.NewWatchlistService(watchlistRepo, quoteProvider, deps.Logger)
	adminService := service.NewAdminService(userRepo, auditRepo, txRunner, deps.Logger)

	sessionHandler := handler.NewSessionHandler()
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	adminHandler := handler.NewAdminHandler(adminService)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/session", sessionHandler.Get)

	watchlist := apiGroup.Group("/watchlist", middleware.RequireAuth())
	watchlist.GET("", watchlistHandler.List)
	watchlist.POST("", watchlistHandler.Add)
	watchlist.DELETE("", watchlistHandler.Remove)

	admin := apiGroup.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.ChangeRole)
	admin.DELETE("/users/:id", adminHandler.SoftDelete)
	admin.POST("/users/:id/restore", adminHandler.Restore)
	admin.GET("/audit-logs", adminHandler.ListAuditLogs)
	admin.GET("/metrics", adminHandler.Metrics)

	// --- Guarded page shells (rendering happens client-side) ---
	shell := handler.NewShellHandler()
	e.GET("/", shell.Serve)
	e.GET("/sign-in", shell.Serve)
	e.GET("/watchlist", shell.Serve)
	e.GET("/admin/dashboard", shell.Serve)
	e.GET("/admin/users", shell.Serve)
	e.GET("/admin/audit-logs", shell.Serve)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
