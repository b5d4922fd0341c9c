// @title Bible Study API
// @version 1.0
// @description Timed Bible quizzes, study history and personalized learning plans.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "bible-study/cmd/api/docs"
	"bible-study/internal/adapter"
	"bible-study/internal/adapter/embedding"
	"bible-study/internal/adapter/quizgen"
	"bible-study/internal/cache"
	"bible-study/internal/config"
	"bible-study/internal/database"
	"bible-study/internal/domain"
	"bible-study/internal/handler"
	"bible-study/internal/logger"
	"bible-study/internal/middleware"
	"bible-study/internal/repository"
	"bible-study/internal/service"
	"bible-study/internal/validation"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var cacheAdapter domain.Cache = adapter.NoopCache{}
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// analytics and embeddings still work uncached
			appLogger.Warn("Redis unavailable, running without a cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}

	historyStore := repository.NewHistoryRepository(db)
	questionStore := repository.NewQuestionRepository(db)

	bank, err := service.LoadQuestionBank(ctx, questionStore)
	if err != nil {
		appLogger.Fatal("Failed to load the question bank", zap.Error(err))
	}

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	analyticsCache := service.NewAnalyticsCache(cacheAdapter, cfg.Redis.TTL)
	historyService := service.NewHistoryService(historyStore, analyticsCache)
	planService := service.NewPlanService(historyService, analyticsCache)
	sessionService := service.NewSessionService(bank, historyService, cfg.Quiz, cfg.Session)
	go sessionService.RunSweeper(ctx, cfg.Session.SweepInterval)

	// generation is optional; quizzes run from the bank without it
	var generator handler.QuestionGenerator
	llmGenerator, err := quizgen.NewLLMQuizGenerator(cfg.LLM)
	if err != nil {
		appLogger.Warn("Quiz generator disabled", zap.Error(err))
	} else {
		embeddingService, err := embedding.New(cfg.Embedding, cfg.LLM.OpenAIAPIKey, cacheAdapter)
		if err != nil {
			appLogger.Warn("Embedding service disabled, generated questions are not deduplicated", zap.Error(err))
		}
		generator = service.NewGenerationService(llmGenerator, embeddingService, questionStore, bank, cfg.Embedding.SimilarityThreshold)
		appLogger.Info("Quiz generator initialized",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model),
			zap.Bool("deduplication", embeddingService != nil))
	}

	validator := validation.NewValidator(cfg.Quiz.MaxCount)
	quizHandler := handler.NewQuizHandler(sessionService, bank, generator, validator)
	userHandler := handler.NewUserHandler(historyService, planService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.SetupRoutes(app, quizHandler, userHandler, handler.RouteConfig{
		Auth:                authService,
		Validator:           validator,
		GenerationPerMinute: cfg.RateLimit.GenerationPerMinute,
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.Int("questions", bank.Len()),
			zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
