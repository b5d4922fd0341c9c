package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"bible-study/internal/adapter"
	"bible-study/internal/adapter/embedding"
	"bible-study/internal/adapter/quizgen"
	"bible-study/internal/cache"
	"bible-study/internal/config"
	"bible-study/internal/database"
	"bible-study/internal/domain"
	"bible-study/internal/dto"
	"bible-study/internal/logger"
	"bible-study/internal/repository"
	"bible-study/internal/service"
	"bible-study/internal/validation"
)

// generate_questions runs the AI generator over a chapter of text and stores
// the questions that are not near-duplicates of the existing bank.
func main() {
	var req dto.GenerateQuizRequest
	file := flag.String("file", "", "text file with the passage (required)")
	flag.StringVar(&req.Book, "book", "", "book the passage is from (required)")
	flag.IntVar(&req.Chapter, "chapter", 0, "chapter of the passage")
	flag.IntVar(&req.Count, "count", 0, "number of questions to generate")
	flag.StringVar(&req.Type, "type", "", "multiple-choice or fill-in-blank")
	flag.StringVar(&req.Difficulty, "difficulty", "", "difficulty tier, e.g. minimum-thinking")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if *file == "" {
		log.Fatal("-file is required")
	}
	text, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read passage", zap.String("file", *file), zap.Error(err))
	}
	req.Text = string(text)

	genReq, errs := validation.NewValidator(cfg.Quiz.MaxCount).ValidateGenerate(&req)
	if len(errs) > 0 {
		log.Fatal("Invalid generation request", zap.String("errors", errs.Error()))
	}

	ctx := context.Background()
	db, err := database.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		log.Fatal("Failed to open database", zap.String("path", cfg.DB.Path), zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	var cacheAdapter domain.Cache = adapter.NoopCache{}
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, embeddings are not cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	questionStore := repository.NewQuestionRepository(db)
	bank, err := service.LoadQuestionBank(ctx, questionStore)
	if err != nil {
		log.Fatal("Failed to load the question bank", zap.Error(err))
	}

	generator, err := quizgen.NewLLMQuizGenerator(cfg.LLM)
	if err != nil {
		log.Fatal("Failed to initialize the quiz generator", zap.Error(err))
	}
	embeddingService, err := embedding.New(cfg.Embedding, cfg.LLM.OpenAIAPIKey, cacheAdapter)
	if err != nil {
		log.Fatal("Failed to initialize the embedding service", zap.Error(err))
	}
	if embeddingService == nil {
		log.Warn("Embedding source not configured; generated questions are not deduplicated")
	}

	svc := service.NewGenerationService(generator, embeddingService, questionStore, bank, cfg.Embedding.SimilarityThreshold)
	added, err := svc.Generate(ctx, genReq)
	if err != nil {
		log.Fatal("Question generation failed", zap.Error(err))
	}

	for _, q := range added {
		fmt.Printf("%s\t%s\t%s\n", q.ID, q.Source, strings.TrimSpace(q.Prompt))
	}
	log.Info("Generation completed", zap.Int("added", len(added)), zap.Int("bank_size", bank.Len()))
}
