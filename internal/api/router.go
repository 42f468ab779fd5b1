package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/societyhub/community-api/docs"
	"github.com/societyhub/community-api/internal/api/handler"
	"github.com/societyhub/community-api/internal/api/middleware"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/service"
	"github.com/societyhub/community-api/internal/infrastructure/config"
	mongodb "github.com/societyhub/community-api/internal/infrastructure/db/mongo"
	redisdb "github.com/societyhub/community-api/internal/infrastructure/db/redis"
	"github.com/societyhub/community-api/internal/infrastructure/http/handlers"
	"github.com/societyhub/community-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("community"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	profileRepo := mongodb.NewProfileRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	visitorRepo := mongodb.NewVisitorRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	issueRepo := mongodb.NewIssueRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(profileRepo, log)
	postService := service.NewPostService(postRepo, profileRepo, log)
	visitorService := service.NewVisitorService(visitorRepo, profileRepo, statsCache, log)
	paymentService := service.NewPaymentService(paymentRepo, profileRepo, statsCache, log)
	issueService := service.NewIssueService(issueRepo, profileRepo, log)
	dashboardService := service.NewDashboardService(visitorRepo, paymentRepo, postRepo, issueRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	postHandler := handler.NewPostHandler(postService)
	visitorHandler := handler.NewVisitorHandler(visitorService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	issueHandler := handler.NewIssueHandler(issueService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/profiles/me", profileHandler.Get)
	v1.PATCH("/profiles/me", profileHandler.Update)
	v1.GET("/profiles/residents", profileHandler.ListResidents,
		middleware.RBAC(domain.RoleAdmin, domain.RoleSecurity))

	v1.GET("/posts", postHandler.List)
	v1.POST("/posts", postHandler.Create)
	v1.POST("/posts/:id/pin", postHandler.Pin, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/visitors", visitorHandler.List)
	v1.POST("/visitors", visitorHandler.Create,
		middleware.RBAC(domain.RoleAdmin, domain.RoleSecurity))
	v1.POST("/visitors/:id/approve", visitorHandler.Approve)
	v1.POST("/visitors/:id/reject", visitorHandler.Reject)
	v1.POST("/visitors/:id/checkout", visitorHandler.CheckOut,
		middleware.RBAC(domain.RoleAdmin, domain.RoleSecurity))

	v1.GET("/payments", paymentHandler.List)
	v1.POST("/payments", paymentHandler.Create, middleware.RBAC(domain.RoleAdmin))
	v1.POST("/payments/:id/pay", paymentHandler.Pay)
	v1.POST("/payments/:id/verify", paymentHandler.Verify, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/issues", issueHandler.List)
	v1.POST("/issues", issueHandler.Create)
	v1.PATCH("/issues/:id/status", issueHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))
	v1.PATCH("/issues/:id/sos", issueHandler.SetSOS, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/dashboard/stats", dashboardHandler.Stats)

	return e
}
