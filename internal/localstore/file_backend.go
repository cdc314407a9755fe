package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const pathConfigFile = "config.json"

// FileBackend stores each document as <dir>/<name>.json. The main document
// may live elsewhere; its location is kept in <dir>/config.json.
type FileBackend struct {
	mu     sync.RWMutex
	dir    string
	logger *zap.Logger
}

type pathConfig struct {
	DBPath string `json:"dbPath"`
}

// NewFileBackend creates the data directory if needed
func NewFileBackend(dir string, logger *zap.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dir: dir, logger: logger}, nil
}

func (b *FileBackend) Read(ctx context.Context, name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.pathFor(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Write(ctx context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return writeFileAtomic(b.pathFor(name), data)
}

// GetPath returns the configured main document path when it exists, and the
// default location otherwise
func (b *FileBackend) GetPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mainPath()
}

// SetPath points the main document at path and remembers the choice
func (b *FileBackend) SetPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	data, err := json.Marshal(pathConfig{DBPath: abs})
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := writeFileAtomic(filepath.Join(b.dir, pathConfigFile), data); err != nil {
		return fmt.Errorf("failed to save database path: %w", err)
	}
	b.logger.Info("Local database path changed", zap.String("path", abs))
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) pathFor(name string) string {
	if name == MainDocument {
		return b.mainPath()
	}
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) mainPath() string {
	fallback := filepath.Join(b.dir, MainDocument+".json")

	data, err := os.ReadFile(filepath.Join(b.dir, pathConfigFile))
	if err != nil {
		return fallback
	}
	var cfg pathConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		b.logger.Warn("ignoring unreadable path config", zap.Error(err))
		return fallback
	}
	if cfg.DBPath == "" {
		return fallback
	}
	if _, err := os.Stat(cfg.DBPath); err != nil {
		return fallback
	}
	return cfg.DBPath
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
