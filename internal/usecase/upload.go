package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bubcass/oireachtas-archive/internal/ports"
)

// UploaderDeps wires the corpus uploader.
type UploaderDeps struct {
	Store  ports.RecordStore
	Hub    ports.DatasetHub
	Logger *slog.Logger
}

// Uploader pushes the local XML corpus to the dataset repository.
type Uploader struct {
	store  ports.RecordStore
	hub    ports.DatasetHub
	logger *slog.Logger
}

// NewUploader constructs the uploader.
func NewUploader(deps UploaderDeps) *Uploader {
	return &Uploader{
		store:  deps.Store,
		hub:    deps.Hub,
		logger: deps.Logger,
	}
}

// Run verifies the source directory, enumerates the corpus, and uploads it.
// A failed preflight returns before any remote call is made.
func (u *Uploader) Run(ctx context.Context) error {
	if err := u.store.Preflight(); err != nil {
		return err
	}

	files, err := u.store.ListXML(ctx)
	if err != nil {
		return fmt.Errorf("list corpus: %w", err)
	}

	if u.logger != nil {
		u.logger.Info("uploading corpus", "files", len(files))
		if len(files) > 0 {
			u.logger.Info("example file", "path", files[0].Path)
		}
	}

	if err := u.hub.UploadFolder(ctx, files); err != nil {
		return fmt.Errorf("upload folder: %w", err)
	}

	if u.logger != nil {
		u.logger.Info("upload complete")
	}
	return nil
}
