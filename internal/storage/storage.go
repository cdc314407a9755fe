package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the stored file does not exist
var ErrNotFound = errors.New("file not found")

// Storage defines the interface for attachment storage. Upload returns the
// location recorded on the attachment: an absolute path for local storage,
// the blob name for Azure.
type Storage interface {
	Upload(ctx context.Context, key string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, location string) (io.ReadCloser, error)
	Delete(ctx context.Context, location string) error
	Exists(ctx context.Context, location string) (bool, error)
	// LocalPath returns a filesystem path holding the file's contents so it
	// can be handed to the operating system
	LocalPath(ctx context.Context, location string) (string, error)
}

// NewStorage creates a new storage instance based on configuration.
// For local mode, files are stored on the local filesystem.
// For cloud/azure mode, files are stored in Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, cacheDir string, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "", "local":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, cacheDir, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Upload copies data to <basePath>/<key> and returns the absolute path
func (s *LocalStorage) Upload(ctx context.Context, key string, data io.Reader) (string, int64, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return fullPath, size, nil
	}
	return abs, size, nil
}

// Download opens a stored file. Locations recorded by older versions may
// point anywhere on disk, so absolute paths are opened as is.
func (s *LocalStorage) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	file, err := os.Open(s.resolve(location))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete deletes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, location string) error {
	if err := os.Remove(s.resolve(location)); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a regular file is stored at location
func (s *LocalStorage) Exists(ctx context.Context, location string) (bool, error) {
	info, err := os.Stat(s.resolve(location))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// LocalPath returns the file's own path
func (s *LocalStorage) LocalPath(ctx context.Context, location string) (string, error) {
	ok, err := s.Exists(ctx, location)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	return s.resolve(location), nil
}

func (s *LocalStorage) resolve(location string) string {
	if filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(s.basePath, filepath.FromSlash(location))
}
