package main

import (
	"fmt"
	"os"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/db"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/handlers"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/middleware"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/envutil"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/gcp"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/server"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/services"
)

func main() {
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	storyRepo := repos.NewStoryRepo(thePG, log)
	locationRepo := repos.NewLocationRepo(thePG, log)
	witnessRepo := repos.NewWitnessRepo(thePG, log)
	entityRepo := repos.NewEntityRepo(thePG, log)
	storyEntityRepo := repos.NewStoryEntityRepo(thePG, log)
	environmentRepo := repos.NewEnvironmentRepo(thePG, log)
	credibilityRepo := repos.NewCredibilityRepo(thePG, log)
	projectionRepo := repos.NewProjectionRepo(thePG, log)
	rightsRepo := repos.NewRightsRepo(thePG, log)
	mediaRepo := repos.NewMediaRepo(thePG, log)
	keyElementRepo := repos.NewKeyElementRepo(thePG, log)
	persistStepRepo := repos.NewPersistStepRepo(thePG, log)
	editorRepo := repos.NewEditorRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, media uploads disabled", "error", err)
	}
	suggestService, err := services.NewSuggestService(log)
	if err != nil {
		log.Error("Could not init SuggestService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, editorRepo, jwtSecretKey)
	testimonyService := services.NewTestimonyService(
		thePG,
		log,
		storyRepo,
		locationRepo,
		witnessRepo,
		entityRepo,
		storyEntityRepo,
		environmentRepo,
		credibilityRepo,
		projectionRepo,
		rightsRepo,
		mediaRepo,
		keyElementRepo,
		persistStepRepo,
	)
	repairService := services.NewRepairService(
		thePG,
		log,
		witnessRepo,
		entityRepo,
		storyEntityRepo,
		environmentRepo,
		credibilityRepo,
		projectionRepo,
		rightsRepo,
		mediaRepo,
		keyElementRepo,
		persistStepRepo,
	)
	mediaService := services.NewMediaService(log, bucketService, storyRepo, mediaRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	recordHandler := handlers.NewRecordHandler(log, testimonyService, repairService)
	transferHandler := handlers.NewTransferHandler(log, testimonyService)
	mediaHandler := handlers.NewMediaHandler(log, mediaService)
	suggestHandler := handlers.NewSuggestHandler(log, suggestService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:  authMiddleware,
		RecordHandler:   recordHandler,
		TransferHandler: transferHandler,
		MediaHandler:    mediaHandler,
		SuggestHandler:  suggestHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
