package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files under a base directory.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates baseDir if needed. baseURL prefixes URLs of stored files.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: local directory is required", ErrInvalidConfig)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{baseDir: abs, baseURL: baseURL}, nil
}

// Dir returns the absolute base directory, for serving it over HTTP.
func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) resolve(p string) (string, string, error) {
	rel, err := cleanPath(p)
	if err != nil {
		return "", "", err
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(full, s.baseDir+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return rel, full, nil
}

// Put writes data to path, replacing any existing file.
func (s *LocalStorage) Put(ctx context.Context, path string, data []byte, contentType string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return &File{Path: rel, Size: int64(len(data)), ContentType: contentType, URL: s.URL(rel)}, nil
}

// Exists reports whether a regular file is stored at path.
func (s *LocalStorage) Exists(_ context.Context, path string) bool {
	_, full, err := s.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// Delete removes the file at path.
func (s *LocalStorage) Delete(_ context.Context, path string) error {
	_, full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// URL joins the base URL and path.
func (s *LocalStorage) URL(path string) string {
	return s.baseURL + strings.TrimPrefix(path, "/")
}
