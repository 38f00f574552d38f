package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/villageconnect/grievance-system/docs"
	"github.com/villageconnect/grievance-system/internal/api/handler"
	"github.com/villageconnect/grievance-system/internal/api/middleware"
	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// Dependencies carries everything the router needs, wired up by main.
type Dependencies struct {
	Log           zerolog.Logger
	JWTSecret     string
	Auth          ports.AuthService
	Submissions   ports.SubmissionService
	Grievances    ports.GrievanceService
	Notifications ports.NotificationRepository
	Analyzer      ports.ImageAnalyzer

	Mongo *mongo.Database
	Redis *redis.Client
	Blobs handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("grievance"))

	// --- Operational surface (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis, d.Blobs)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))

	grievanceHandler := handler.NewGrievanceHandler(d.Submissions, d.Grievances)
	moderators := middleware.RBAC(domain.RoleAdmin, domain.RoleDepartment)

	v1.POST("/grievances", grievanceHandler.Submit)
	v1.GET("/grievances/feed", grievanceHandler.Feed)
	v1.GET("/grievances/mine", grievanceHandler.Mine)
	v1.GET("/grievances/department", grievanceHandler.Department, moderators)
	v1.GET("/grievances/summary", grievanceHandler.Summary, middleware.RBAC(domain.RoleAdmin))
	v1.GET("/grievances/:id", grievanceHandler.Get)
	v1.PATCH("/grievances/:id", grievanceHandler.Update, moderators)
	v1.GET("/grievances/:id/comments", grievanceHandler.Comments)
	v1.POST("/grievances/:id/comments", grievanceHandler.AddComment)

	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	analysisHandler := handler.NewAnalysisHandler(d.Analyzer)
	v1.POST("/analysis", analysisHandler.Analyze, moderators)

	return e
}
