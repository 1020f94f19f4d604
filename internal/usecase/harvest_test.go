package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bubcass/oireachtas-archive/internal/domain"
	"github.com/bubcass/oireachtas-archive/internal/ports"
)

type fakeSource struct {
	requested []string
	records   map[string][]byte
	failOn    map[string]error
}

func (f *fakeSource) FetchDay(_ context.Context, day time.Time) (*domain.DebateRecord, error) {
	date := day.Format(domain.DateLayout)
	f.requested = append(f.requested, date)

	if err := f.failOn[date]; err != nil {
		return nil, err
	}
	body, ok := f.records[date]
	if !ok {
		return nil, nil
	}
	return &domain.DebateRecord{Date: day, Body: body}, nil
}

type fakeStore struct {
	saved   []string
	files   []ports.UploadFile
	saveErr error
	prefErr error
}

func (f *fakeStore) SaveRecord(_ context.Context, record domain.DebateRecord) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := record.Filename()
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeStore) ListXML(context.Context) ([]ports.UploadFile, error) {
	return f.files, nil
}

func (f *fakeStore) Preflight() error {
	return f.prefErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSpan(startDay, endDay int) domain.DateRange {
	return domain.DateRange{
		Start: time.Date(2026, time.February, startDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.February, endDay, 0, 0, 0, 0, time.UTC),
	}
}

func TestHarvesterRequestsEveryDayOnceAscending(t *testing.T) {
	t.Parallel()

	source := &fakeSource{records: map[string][]byte{}}
	harvester := NewHarvester(HarvesterDeps{
		Source: source,
		Store:  &fakeStore{},
		Sleep:  func(time.Duration) {},
		Logger: discardLogger(),
	})

	if _, err := harvester.Run(context.Background(), testSpan(1, 4)); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04"}
	if len(source.requested) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(source.requested))
	}
	for i, date := range want {
		if source.requested[i] != date {
			t.Fatalf("request %d: expected %s, got %s", i, date, source.requested[i])
		}
	}
}

func TestHarvesterCountsOutcomesAndContinuesOnError(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		records: map[string][]byte{
			"2026-02-01": []byte("<debate/>"),
			"2026-02-03": []byte("<debate/>"),
		},
		failOn: map[string]error{
			"2026-02-02": errors.New("connection reset"),
		},
	}
	store := &fakeStore{}
	harvester := NewHarvester(HarvesterDeps{
		Source: source,
		Store:  store,
		Sleep:  func(time.Duration) {},
		Logger: discardLogger(),
	})

	summary, err := harvester.Run(context.Background(), testSpan(1, 4))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if summary.Saved != 2 || summary.Missing != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.saved) != 2 || store.saved[0] != "2026-02-01_mul@.xml" {
		t.Fatalf("unexpected saved files: %v", store.saved)
	}
	if len(source.requested) != 4 {
		t.Fatalf("a failed day must not stop the loop, got %d requests", len(source.requested))
	}
}

func TestHarvesterCountsSaveFailures(t *testing.T) {
	t.Parallel()

	source := &fakeSource{records: map[string][]byte{"2026-02-01": []byte("<debate/>")}}
	harvester := NewHarvester(HarvesterDeps{
		Source: source,
		Store:  &fakeStore{saveErr: errors.New("disk full")},
		Sleep:  func(time.Duration) {},
		Logger: discardLogger(),
	})

	summary, err := harvester.Run(context.Background(), testSpan(1, 1))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if summary.Failed != 1 || summary.Saved != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestHarvesterThrottlesBetweenRequests(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	harvester := NewHarvester(HarvesterDeps{
		Source:   &fakeSource{records: map[string][]byte{}},
		Store:    &fakeStore{},
		Throttle: 300 * time.Millisecond,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
		Logger:   discardLogger(),
	})

	if _, err := harvester.Run(context.Background(), testSpan(1, 3)); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(slept) != 3 {
		t.Fatalf("expected 3 sleeps, got %d", len(slept))
	}
	for _, d := range slept {
		if d != 300*time.Millisecond {
			t.Fatalf("unexpected throttle: %v", d)
		}
	}
}

func TestHarvesterStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{records: map[string][]byte{}}
	harvester := NewHarvester(HarvesterDeps{
		Source: source,
		Store:  &fakeStore{},
		Sleep:  func(time.Duration) {},
		Logger: discardLogger(),
	})

	if _, err := harvester.Run(ctx, testSpan(1, 4)); err == nil {
		t.Fatalf("expected context error")
	}
	if len(source.requested) != 0 {
		t.Fatalf("cancelled run must not issue requests")
	}
}
