package app

import (
	"fmt"
	"log/slog"

	"github.com/bubcass/oireachtas-archive/internal/config"
	"github.com/bubcass/oireachtas-archive/internal/domain"
	"github.com/bubcass/oireachtas-archive/internal/infrastructure/hub"
	"github.com/bubcass/oireachtas-archive/internal/infrastructure/oireachtas"
	"github.com/bubcass/oireachtas-archive/internal/infrastructure/storage"
	"github.com/bubcass/oireachtas-archive/internal/usecase"
)

// NewHarvester wires the date-range fetch command from configuration and
// resolves the configured span.
func NewHarvester(cfg config.Config, logger *slog.Logger) (*usecase.Harvester, domain.DateRange, error) {
	start, end, err := cfg.Fetch.DateRange()
	if err != nil {
		return nil, domain.DateRange{}, fmt.Errorf("fetch config: %w", err)
	}

	harvester := usecase.NewHarvester(usecase.HarvesterDeps{
		Source:   oireachtas.NewClient(cfg.Fetch, nil),
		Store:    storage.NewLocalStore(nil, cfg.Fetch.OutputDir),
		Throttle: cfg.Fetch.Throttle(),
		Logger:   logger.With("component", "harvester"),
	})

	return harvester, domain.DateRange{Start: start, End: end}, nil
}

// NewIndexer wires the availability-index command from configuration.
func NewIndexer(cfg config.Config, logger *slog.Logger) *usecase.Indexer {
	return usecase.NewIndexer(usecase.IndexerDeps{
		Hub:        hub.NewClient(cfg.Hub),
		OutputPath: cfg.Index.Output,
		Logger:     logger.With("component", "indexer"),
	})
}

// NewUploader wires the corpus-upload command from configuration.
func NewUploader(cfg config.Config, logger *slog.Logger) *usecase.Uploader {
	return usecase.NewUploader(usecase.UploaderDeps{
		Store:  storage.NewLocalStore(nil, cfg.Upload.SourceDir),
		Hub:    hub.NewClient(cfg.Hub),
		Logger: logger.With("component", "uploader"),
	})
}
