package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"

	"github.com/bubcass/oireachtas-archive/internal/ports"
)

// datePattern matches corpus filenames and captures their calendar date.
// Anchored at the end so paths with directories still match on the basename.
var datePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})_mul@\.xml$`)

// IndexerDeps wires the availability-index generator.
type IndexerDeps struct {
	Hub        ports.DatasetHub
	Fs         afero.Fs
	OutputPath string
	Logger     *slog.Logger
}

// Indexer derives the list of available debate dates from the dataset
// repository's file listing and writes it as a JSON artifact.
type Indexer struct {
	hub    ports.DatasetHub
	fs     afero.Fs
	output string
	logger *slog.Logger
}

// NewIndexer constructs the generator; a nil Fs means the OS filesystem.
func NewIndexer(deps IndexerDeps) *Indexer {
	filesystem := deps.Fs
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	return &Indexer{
		hub:    deps.Hub,
		fs:     filesystem,
		output: deps.OutputPath,
		logger: deps.Logger,
	}
}

// Run lists the repository, extracts the dates, and writes the index.
func (ix *Indexer) Run(ctx context.Context) error {
	if ix.logger != nil {
		ix.logger.Info("listing dataset files")
	}

	files, err := ix.hub.ListRepoFiles(ctx)
	if err != nil {
		return fmt.Errorf("list dataset files: %w", err)
	}

	dates := AvailableDates(files)

	payload, err := json.MarshalIndent(dates, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	if dir := filepath.Dir(ix.output); dir != "." {
		if err := ix.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(ix.fs, ix.output, payload, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	if ix.logger != nil {
		ix.logger.Info("wrote index", "dates", len(dates), "path", ix.output)
	}
	return nil
}

// AvailableDates extracts the calendar dates encoded in corpus filenames,
// deduplicated and sorted ascending. Non-matching filenames are ignored.
func AvailableDates(files []string) []string {
	seen := map[string]struct{}{}
	for _, file := range files {
		match := datePattern.FindStringSubmatch(file)
		if match == nil {
			continue
		}
		seen[match[1]] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
