package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files below a base directory.
type Local struct {
	basePath string
	baseURL  string
}

func NewLocal(basePath, baseURL string) (*Local, error) {
	if basePath == "" {
		basePath = "./media"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Local{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Local) Save(ctx context.Context, key string, r io.Reader, _ string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (s *Local) Delete(_ context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *Local) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + key
}

// resolve maps key into the base directory and refuses keys that would
// escape it.
func (s *Local) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty storage key")
	}
	return filepath.Join(s.basePath, clean), nil
}
