package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/bubcass/oireachtas-archive/internal/app"
	"github.com/bubcass/oireachtas-archive/internal/config"
	"github.com/bubcass/oireachtas-archive/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	indexer := app.NewIndexer(cfg, logger)
	if err := indexer.Run(ctx); err != nil {
		logger.Error("index generation failed", "error", err)
		os.Exit(1)
	}
}
