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

	harvester, span, err := app.NewHarvester(cfg, logger)
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	if _, err := harvester.Run(ctx, span); err != nil {
		logger.Error("harvest stopped", "error", err)
		os.Exit(1)
	}
}
