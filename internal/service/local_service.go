package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/localstore"
	"go.uber.org/zap"
)

// LocalService exposes the local document store
type LocalService struct {
	docs   *localstore.DocumentStore
	logger *zap.Logger
}

// NewLocalService creates a new LocalService instance
func NewLocalService(docs *localstore.DocumentStore, logger *zap.Logger) *LocalService {
	return &LocalService{docs: docs, logger: logger}
}

// Path returns where the main document lives
func (s *LocalService) Path() string {
	return s.docs.Path()
}

// SetPath relocates the main document
func (s *LocalService) SetPath(ctx context.Context, path string) (string, error) {
	if err := s.docs.SetPath(path); err != nil {
		if errors.Is(err, localstore.ErrPathUnsupported) {
			return "", fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return "", err
	}
	s.logger.Info("local database path set", zap.String("path", s.docs.Path()))
	return s.docs.Path(), nil
}

// Refresh reloads the document from disk
func (s *LocalService) Refresh(ctx context.Context) error {
	return s.docs.Refresh(ctx)
}

// Document returns the main document's clients and projects
func (s *LocalService) Document(ctx context.Context) (*domain.Document, error) {
	return s.docs.ReadDocument(ctx)
}

// SaveDocument replaces the main document's clients and projects
func (s *LocalService) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if err := s.docs.WriteDocument(ctx, doc); err != nil {
		return err
	}
	s.logger.Debug("local document saved", zap.Int("projects", len(doc.Projects)))
	return nil
}

func (s *LocalService) Collections(ctx context.Context) ([]string, error) {
	return s.docs.Collections(ctx)
}

func (s *LocalService) List(ctx context.Context, collection string) ([]localstore.Record, error) {
	return s.docs.GetAll(ctx, collection)
}

func (s *LocalService) Get(ctx context.Context, collection, id string) (localstore.Record, error) {
	record, err := s.docs.GetByID(ctx, collection, id)
	return record, localError(err)
}

func (s *LocalService) Add(ctx context.Context, collection string, item localstore.Record) (localstore.Record, error) {
	if len(item) == 0 {
		return nil, fmt.Errorf("%w: record is empty", ErrInvalidInput)
	}
	return s.docs.Add(ctx, collection, item)
}

func (s *LocalService) Update(ctx context.Context, collection, id string, updates localstore.Record) (localstore.Record, error) {
	record, err := s.docs.Update(ctx, collection, id, updates)
	return record, localError(err)
}

func (s *LocalService) Delete(ctx context.Context, collection, id string) error {
	return localError(s.docs.Delete(ctx, collection, id))
}

func localError(err error) error {
	if errors.Is(err, localstore.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
