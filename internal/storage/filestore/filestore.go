// Package filestore keeps each document as <dir>/<key>.json.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

type Store struct {
	dir string
}

// New opens a file store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("filestore: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", key, err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial document.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return fmt.Errorf("filestore: rename %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
