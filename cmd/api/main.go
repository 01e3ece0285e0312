package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/config"
	"go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/docstore/memory"
	pgstore "go-skillhub-backend/internal/docstore/postgres"
	"go-skillhub-backend/internal/docstore/surreal"
	"go-skillhub-backend/internal/domain"
	repo "go-skillhub-backend/internal/repository/docstore"
	"go-skillhub-backend/internal/usecase"
	"go-skillhub-backend/pkg/auth"
	"go-skillhub-backend/pkg/blob"
	"go-skillhub-backend/pkg/database"
	"go-skillhub-backend/pkg/logger"
)

// Engine bundles every usecase the delivery layer mounts. The web
// frontend (routing, templates, sessions) lives outside this module and
// consumes exactly this surface.
type Engine struct {
	Auth        domain.AuthUsecase
	Skills      domain.SkillUsecase
	Lessons     domain.LessonUsecase
	Reviews     domain.ReviewUsecase
	Discussions domain.DiscussionUsecase
	Products    domain.ProductUsecase
	Profiles    domain.ProfileUsecase
	Admin       domain.AdminUsecase
	Health      usecase.HealthUsecase
}

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting skillhub engine", "store_driver", cfg.StoreDriver)

	ctx := context.Background()

	// 3. Setup Document Store
	var store docstore.Store
	var cleanup func()
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		pg := pgstore.NewStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = pg
		cleanup = pool.Close
	case "surreal":
		sdb, err := surreal.NewStore(surreal.Config{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNS,
			Database:  cfg.SurrealDB,
			User:      cfg.SurrealUser,
			Pass:      cfg.SurrealPass,
		})
		if err != nil {
			logger.Log.Error("Failed to connect to surrealdb", "error", err)
			os.Exit(1)
		}
		store = sdb
		cleanup = sdb.Close
	case "memory":
		store = memory.New()
		cleanup = func() {}
	default:
		logger.Log.Error("Unknown store driver", "store_driver", cfg.StoreDriver)
		os.Exit(1)
	}
	defer cleanup()

	// 4. Setup Collaborator Clients
	verifier := auth.NewProvider(cfg.JWKSUrl)
	blobs, err := blob.NewS3Storage(ctx, blob.S3Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Log.Error("Failed to set up blob storage", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	userRepo := repo.NewUserRepository(store)
	skillRepo := repo.NewSkillRepository(store)
	lessonRepo := repo.NewLessonRepository(store)
	reviewRepo := repo.NewReviewRepository(store)
	discussionRepo := repo.NewDiscussionRepository(store)
	productRepo := repo.NewProductRepository(store)

	// 6. Setup Usecases
	validate := validator.New()
	engine := &Engine{
		Auth:        usecase.NewAuthUsecase(userRepo, verifier, blobs, validate),
		Skills:      usecase.NewSkillUsecase(skillRepo, lessonRepo, reviewRepo, discussionRepo, userRepo, blobs, validate, cfg.HomeFeedLimit),
		Lessons:     usecase.NewLessonUsecase(skillRepo, lessonRepo, validate),
		Reviews:     usecase.NewReviewUsecase(skillRepo, reviewRepo, validate),
		Discussions: usecase.NewDiscussionUsecase(skillRepo, discussionRepo, userRepo),
		Products:    usecase.NewProductUsecase(productRepo, userRepo, blobs, validate),
		Profiles:    usecase.NewProfileUsecase(userRepo, skillRepo, productRepo, reviewRepo, cfg.ActivityFeedLimit),
		Admin:       usecase.NewAdminUsecase(userRepo, skillRepo),
		Health:      usecase.NewHealthUsecase(store),
	}

	logger.Log.Info("Engine ready", "health", engine.Health.Check(ctx))

	// 7. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")
}
