package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores files on the local filesystem. Meant for development;
// production deployments use R2.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a filesystem-backed storage rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
