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

	uploader := app.NewUploader(cfg, logger)
	if err := uploader.Run(ctx); err != nil {
		logger.Error("upload failed", "error", err)
		os.Exit(1)
	}
}
