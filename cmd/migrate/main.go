package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"bible-study/internal/config"
	"bible-study/internal/database"
	"bible-study/internal/logger"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying pending ones")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		l.Fatal("Failed to open database", zap.String("path", cfg.DB.Path), zap.Error(err))
	}
	defer db.Close()

	if *down > 0 {
		if err := database.RollbackMigrations(db, *down); err != nil {
			l.Fatal("Failed to roll back migrations", zap.Int("steps", *down), zap.Error(err))
		}
		return
	}
	if err := database.RunMigrations(db); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
