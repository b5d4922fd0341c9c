package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"bible-study/internal/config"
	"bible-study/internal/database"
	"bible-study/internal/domain"
	"bible-study/internal/logger"
	"bible-study/internal/questionbank"
	"bible-study/internal/repository"
)

// seed_questions stores questions from a JSON file (or the built-in set)
// so they are loaded into the bank on every start.
func main() {
	file := flag.String("file", "", "JSON file with an array of questions; the built-in questions when empty")
	flag.Parse()

	ctx := context.Background()
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

	questions, err := loadQuestions(*file)
	if err != nil {
		log.Fatal("Failed to load seed questions", zap.String("file", *file), zap.Error(err))
	}

	// validate and canonicalize book names before anything is written
	valid, err := questionbank.New().Add(questions...)
	if err != nil {
		log.Fatal("Seed questions failed validation", zap.Error(err))
	}
	log.Info("Loaded seed questions", zap.Int("count", len(valid)))

	db, err := database.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		log.Fatal("Failed to open database", zap.String("path", cfg.DB.Path), zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := repository.NewQuestionRepository(db).SaveQuestions(ctx, valid); err != nil {
		log.Fatal("Failed to save seed questions, transaction rolled back", zap.Error(err))
	}
	log.Info("Seeding completed; questions with existing IDs were left untouched", zap.Int("count", len(valid)))
}

func loadQuestions(path string) ([]domain.QuizQuestion, error) {
	if path == "" {
		return questionbank.SeedQuestions()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return questionbank.ParseQuestions(data)
}
