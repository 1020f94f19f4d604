package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bubcass/oireachtas-archive/internal/domain"
	"github.com/bubcass/oireachtas-archive/internal/ports"
)

// LocalStore keeps the XML corpus in a directory tree rooted at a single
// path. The filesystem is abstracted so tests run against an in-memory fs.
type LocalStore struct {
	fs   afero.Fs
	root string
}

var _ ports.RecordStore = (*LocalStore)(nil)

// NewLocalStore roots a store at dir; a nil fs means the real OS filesystem.
func NewLocalStore(filesystem afero.Fs, dir string) *LocalStore {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	return &LocalStore{fs: filesystem, root: dir}
}

// Preflight fails when the corpus root does not exist. Callers that only
// read (the uploader) use it to stop before touching anything remote.
func (s *LocalStore) Preflight() error {
	exists, err := afero.DirExists(s.fs, s.root)
	if err != nil {
		return fmt.Errorf("check %s: %w", s.root, err)
	}
	if !exists {
		return fmt.Errorf("source directory not found: %s", s.root)
	}
	return nil
}

// SaveRecord writes the record body under its canonical filename, creating
// the root on first use, and returns the filename.
func (s *LocalStore) SaveRecord(_ context.Context, record domain.DebateRecord) (string, error) {
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.root, err)
	}

	name := record.Filename()
	if err := afero.WriteFile(s.fs, filepath.Join(s.root, name), record.Body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// ListXML enumerates every .xml file under the root recursively, sorted by
// root-relative path.
func (s *LocalStore) ListXML(_ context.Context) ([]ports.UploadFile, error) {
	var files []ports.UploadFile

	err := afero.Walk(s.fs, s.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".xml") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		full := path
		files = append(files, ports.UploadFile{
			Path: filepath.ToSlash(rel),
			Size: info.Size(),
			Open: func() (io.ReadCloser, error) {
				return s.fs.Open(full)
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
