package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/arogyalab/backend/config"
	"github.com/arogyalab/backend/internal/api"
	"github.com/arogyalab/backend/internal/catalog"
	"github.com/arogyalab/backend/internal/database"
	"github.com/arogyalab/backend/internal/extract"
	"github.com/arogyalab/backend/internal/middleware"
	"github.com/arogyalab/backend/internal/server"
	"github.com/arogyalab/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Reference catalogs are required for every upload; refuse to start
	// without them.
	labTests, err := catalog.LoadLabTests(filepath.Join(cfg.DataDir, "medical_test_parameters.csv"))
	if err != nil {
		log.Fatalf("Failed to load lab test catalog: %v", err)
	}
	foods, err := catalog.LoadFoods(filepath.Join(cfg.DataDir, "food_data.csv"))
	if err != nil {
		log.Fatalf("Failed to load food catalog: %v", err)
	}

	gormDB, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthDB, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open health check connection: %v", err)
	}
	defer healthDB.Close()

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without rate limiting and mirroring: %v", err)
		redisClient = nil
	}

	ctx := context.Background()
	files, err := service.NewFileStore(ctx, cfg.UploadDir, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	var chatLimiter *middleware.RateLimiter
	var mirror *service.EntityMirror
	if redisClient != nil {
		chatLimiter = middleware.NewChatRateLimiter(redisClient)
		mirror = service.NewEntityMirror(redisClient)
	}

	auth := service.NewAuthService(gormDB, cfg.JWTSecret)
	reports := service.NewReportService(gormDB, files, extract.New(), labTests, mirror)
	activity := service.NewActivityService(gormDB, mirror)
	messages := service.NewMessageService(gormDB)
	dashboard := service.NewDashboardService(gormDB, foods, labTests, reports, activity, messages)
	profile := service.NewProfileService(gormDB, cfg.UploadDir)

	chatClient := service.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterURL, cfg.ChatModel)
	chat := service.NewChatService(gormDB, chatClient, cfg.OpenRouterAPIKey != "", reports, activity)

	srv := server.NewServer(&api.Services{
		Auth:        auth,
		Reports:     reports,
		Dashboard:   dashboard,
		Activity:    activity,
		Chat:        chat,
		Messages:    messages,
		Profile:     profile,
		HealthDB:    healthDB,
		ChatLimiter: chatLimiter,
	})

	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
