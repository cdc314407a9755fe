package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// BadgerBackend keeps documents in an embedded badger database keyed by
// document name
type BadgerBackend struct {
	db     *badger.DB
	dir    string
	logger *zap.Logger
}

// NewBadgerBackend opens (or creates) the database in dir. An empty dir
// opens an in-memory database.
func NewBadgerBackend(dir string, logger *zap.Logger) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerBackend{db: db, dir: dir, logger: logger}, nil
}

func (b *BadgerBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *BadgerBackend) Write(ctx context.Context, name string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// GetPath returns the database directory
func (b *BadgerBackend) GetPath() string {
	if b.dir == "" {
		return ":memory:"
	}
	return b.dir
}

func (b *BadgerBackend) SetPath(path string) error {
	return ErrPathUnsupported
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
