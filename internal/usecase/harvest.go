package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bubcass/oireachtas-archive/internal/domain"
	"github.com/bubcass/oireachtas-archive/internal/ports"
)

// HarvesterDeps wires the driven adapters into the date-range fetch loop.
type HarvesterDeps struct {
	Source   ports.DebateSource
	Store    ports.RecordStore
	Throttle time.Duration
	Sleep    func(time.Duration)
	Logger   *slog.Logger
}

// Harvester walks a date range, fetching and persisting one record per
// sitting day.
type Harvester struct {
	source   ports.DebateSource
	store    ports.RecordStore
	throttle time.Duration
	sleep    func(time.Duration)
	logger   *slog.Logger
}

// NewHarvester constructs the fetch loop; a nil Sleep uses time.Sleep.
func NewHarvester(deps HarvesterDeps) *Harvester {
	sleep := deps.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Harvester{
		source:   deps.Source,
		store:    deps.Store,
		throttle: deps.Throttle,
		sleep:    sleep,
		logger:   deps.Logger,
	}
}

// Run issues exactly one fetch per calendar day in the span, ascending,
// with a fixed delay between requests. Per-day failures are logged and the
// loop continues; only context cancellation aborts the run. The returned
// summary reflects whatever completed.
func (h *Harvester) Run(ctx context.Context, span domain.DateRange) (domain.HarvestSummary, error) {
	var summary domain.HarvestSummary

	days := span.Days()
	h.info("harvest starting", "days", len(days))

	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		date := day.Format(domain.DateLayout)

		record, err := h.source.FetchDay(ctx, day)
		switch {
		case err != nil:
			summary.Failed++
			h.warn("fetch failed", "date", date, "error", err)
		case record == nil:
			summary.Missing++
		default:
			name, saveErr := h.store.SaveRecord(ctx, *record)
			if saveErr != nil {
				summary.Failed++
				h.warn("save failed", "date", date, "error", saveErr)
				break
			}
			summary.Saved++
			h.info("saved", "file", name)
		}

		h.sleep(h.throttle)
	}

	h.info("harvest done",
		"saved", summary.Saved,
		"missing", summary.Missing,
		"failed", summary.Failed)
	return summary, nil
}

func (h *Harvester) info(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}

func (h *Harvester) warn(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
