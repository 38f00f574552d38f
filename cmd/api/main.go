// Command api runs the grievance system HTTP server.
//
// @title           VillageConnect Grievance API
// @version         1.0
// @description     Citizen grievance reporting: submission with AI priority classification, lifecycle workflow, and notification fan-out.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/villageconnect/grievance-system/internal/api"
	"github.com/villageconnect/grievance-system/internal/core/service"
	"github.com/villageconnect/grievance-system/internal/infrastructure/ai"
	"github.com/villageconnect/grievance-system/internal/infrastructure/config"
	mongodb "github.com/villageconnect/grievance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/villageconnect/grievance-system/internal/infrastructure/db/redis"
	"github.com/villageconnect/grievance-system/internal/infrastructure/queue"
	"github.com/villageconnect/grievance-system/internal/infrastructure/storage"
	"github.com/villageconnect/grievance-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	// --- Storage backends ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	blobs, err := storage.Connect(ctx, storage.Config{
		Endpoint:      cfg.Minio.Endpoint,
		AccessKey:     cfg.Minio.AccessKey,
		SecretKey:     cfg.Minio.SecretKey,
		Bucket:        cfg.Minio.Bucket,
		UseSSL:        cfg.Minio.UseSSL,
		PublicBaseURL: cfg.Minio.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage connection failed")
	}

	// --- Repositories ---
	grievanceRepo := mongodb.NewGrievanceRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	analysisRepo := mongodb.NewAnalysisRepository(db)
	txRunner := mongodb.NewTxRunner(mongoClient)
	feedCache := redisdb.NewFeedCache(rdb, log)

	for _, idx := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{grievanceRepo, commentRepo, notificationRepo, userRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- AI ---
	classifier, err := ai.NewClassifier(ctx, ai.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client failed")
	}
	analyzer := ai.NewAnalyzer(classifier, analysisRepo, log)

	// --- Services ---
	notificationService := service.NewNotificationService(userRepo, notificationRepo, log)
	dispatcher := queue.NewDispatcher(cfg.FanoutWorkers, notificationService, log)
	dispatcher.Start(ctx)

	submissionService := service.NewSubmissionService(
		grievanceRepo, classifier, blobs, dispatcher, feedCache, log, cfg.ClassifyTimeout,
	)
	grievanceService := service.NewGrievanceService(
		grievanceRepo, commentRepo, notificationService, txRunner, feedCache, log,
	)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Log:           log,
		JWTSecret:     cfg.JWTSecret,
		Auth:          authService,
		Submissions:   submissionService,
		Grievances:    grievanceService,
		Notifications: notificationRepo,
		Analyzer:      analyzer,
		Mongo:         db,
		Redis:         rdb,
		Blobs:         blobs,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("grievance api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
