package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage writes objects under a base directory served as static files.
// It is the default backend for local dev.
type LocalStorage struct {
	basePath   string
	publicBase string
}

var _ Storage = &LocalStorage{}

func NewLocalStorage(basePath, publicBase string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "static/uploads"
	}
	if publicBase == "" {
		publicBase = "/static/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStorage{
		basePath:   basePath,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *LocalStorage) Write(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	target := filepath.Join(s.basePath, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	target := filepath.Join(s.basePath, filepath.Clean("/"+key))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
