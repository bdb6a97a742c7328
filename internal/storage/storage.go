package storage

import (
	"context"
	"os"
	"path/filepath"
)

// PhotoStorage persists uploaded RMA photos and returns the stored path
// recorded on the request row.
type PhotoStorage interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// ------------------------------
// Local disk
// ------------------------------

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
