// Package localstore keeps the offline copy of the tracker data: a main JSON
// document plus one document per year, stored through a pluggable backend.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
)

const (
	// MainDocument names the default document
	MainDocument = "ina-ai-chart-db"
	// YearsConfig names the document listing the available years
	YearsConfig = "years-config"
)

var (
	// ErrNotExist is returned by Read when the document has never been written
	ErrNotExist = errors.New("document does not exist")
	// ErrPathUnsupported is returned by backends that cannot relocate the
	// main document
	ErrPathUnsupported = errors.New("backend does not support relocating the main document")
)

// Backend persists named JSON documents
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	// GetPath returns the location of the main document
	GetPath() string
	// SetPath relocates the main document
	SetPath(path string) error
	Close() error
}

// YearDocument names the partition for one year
func YearDocument(year int) string {
	return fmt.Sprintf("ina-ai-chart-%d", year)
}

// NewBackend creates the backend selected by configuration
func NewBackend(cfg *config.LocalConfig, logger *zap.Logger) (Backend, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileBackend(cfg.DataDir, logger)
	case "badger":
		return NewBadgerBackend(cfg.BadgerDir, logger)
	default:
		return nil, fmt.Errorf("unsupported local backend: %s", cfg.Backend)
	}
}
