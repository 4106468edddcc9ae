// Package storage keeps uploaded artifacts (resumes, profile images,
// certificates) either on local disk or in an S3 compatible bucket.
// Records only ever hold the returned key.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
)

// Storage is the file store used by the services.
type Storage interface {
	// Save stores the content under key.
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}

// New picks the backend named by cfg.Driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.BasePath, cfg.BaseURL)
	case "s3":
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
