package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipegen/internal/api"
	"recipegen/internal/auth"
	"recipegen/internal/document"
	"recipegen/internal/platform/gemini"
	"recipegen/internal/platform/localllm"
	"recipegen/internal/platform/logger"
	"recipegen/internal/recipe"
)

func main() {
	ctx := context.Background()

	config, err := loadConfig("config.json", ".env")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(config.Env)
	if err != nil {
		panic(fmt.Errorf("error creating logger: %w", err))
	}
	defer logger.Sync(log)

	if err := config.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	generator, closeGenerator, err := newGenerator(ctx, config, log)
	if err != nil {
		log.Fatal("error creating generator", zap.String("provider", config.Provider), zap.Error(err))
	}
	defer closeGenerator()

	pipeline := recipe.NewPipeline(generator, log)

	rendererOpts := []document.Option{document.WithLogger(log)}
	if config.PDFFont != "" {
		rendererOpts = append(rendererOpts, document.WithUTF8Font(config.PDFFont, config.PDFFontBold))
	}
	renderer := document.NewRenderer(rendererOpts...)

	var (
		store api.AnalysisStore
		users auth.UserRepository
	)
	if config.DatabaseURL != "" {
		dbStore, err := recipe.NewPostgresStore(config.DatabaseURL)
		if err != nil {
			log.Fatal("error creating postgres store", zap.Error(err))
		}
		defer dbStore.Close()
		store = dbStore

		userRepo, err := auth.NewPostgresRepository(dbStore.DB())
		if err != nil {
			log.Fatal("error creating user repository", zap.Error(err))
		}
		users = userRepo
	} else {
		log.Warn("DATABASE_URL not set, image analyses will not be stored and accounts are kept in memory")
		users = auth.NewMemoryRepository()
	}

	handler := api.NewHandler(pipeline, renderer, store, config.ExportDir, log)

	if config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	handler.Register(r)

	if config.JWTSecret != "" {
		authService, err := auth.NewService(users, config.JWTSecret, auth.WithLogger(log))
		if err != nil {
			log.Fatal("error creating auth service", zap.Error(err))
		}
		api.NewAuthHandler(authService, log).Register(r)
	} else {
		log.Warn("JWT_SECRET not set, /api/auth routes are disabled")
	}

	log.Info("server starting", zap.String("port", config.Port), zap.String("provider", config.Provider))
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newGenerator builds the inference backend selected by config. The returned
// func releases its resources.
func newGenerator(ctx context.Context, config Config, log *zap.Logger) (recipe.Generator, func(), error) {
	switch config.Provider {
	case providerLocal:
		return localllm.NewClient(config.LocalLLMURL, config.LocalLLMModel, log), func() {}, nil
	case providerGemini:
		client, err := gemini.NewClient(ctx, config.GeminiAPIKey, config.GeminiModel, log)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {
			if err := client.Close(); err != nil {
				log.Warn("error closing gemini client", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM_PROVIDER %q", config.Provider)
	}
}
