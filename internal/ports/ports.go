package ports

import (
	"context"
	"io"
	"time"

	"github.com/bubcass/oireachtas-archive/internal/domain"
)

// DebateSource fetches the debate record for a single sitting day.
// A nil record with a nil error means the day has no published record
// (404, non-XML body, or any other "nothing there" response).
type DebateSource interface {
	FetchDay(ctx context.Context, day time.Time) (*domain.DebateRecord, error)
}

// UploadFile is one local file staged for upload, addressed by its path
// relative to the upload root (forward slashes, the hub's path form).
type UploadFile struct {
	Path string
	Size int64
	Open func() (io.ReadCloser, error)
}

// RecordStore persists debate records under a local corpus root and
// enumerates what is already there.
type RecordStore interface {
	SaveRecord(ctx context.Context, record domain.DebateRecord) (string, error)
	ListXML(ctx context.Context) ([]UploadFile, error)
	Preflight() error
}

// DatasetHub talks to the remote dataset repository: listing what the
// corpus already contains and pushing a local folder into it.
type DatasetHub interface {
	ListRepoFiles(ctx context.Context) ([]string, error)
	UploadFolder(ctx context.Context, files []UploadFile) error
}
