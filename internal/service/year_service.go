package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/localstore"
	"go.uber.org/zap"
)

// YearService partitions clients and projects by year in the local store
type YearService struct {
	mu      sync.Mutex
	sync    *Sync
	years   *localstore.YearStore
	current int
	logger  *zap.Logger
}

// NewYearService creates a YearService showing the current calendar year
func NewYearService(sync *Sync, years *localstore.YearStore, logger *zap.Logger) *YearService {
	return &YearService{
		sync:    sync,
		years:   years,
		current: years.CurrentYear(),
		logger:  logger,
	}
}

// Current returns the year the mirror currently shows
func (s *YearService) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// List returns the available years, newest first
func (s *YearService) List(ctx context.Context) ([]int, error) {
	return s.years.ListYears(ctx)
}

// SaveCurrent writes the mirrored clients and projects to the current
// year's partition when there is anything to save
func (s *YearService) SaveCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

// Switch saves the current year and loads year into the mirror. A year
// without a saved partition loads empty.
func (s *YearService) Switch(ctx context.Context, year int) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if year == s.current {
		return s.sync.Store.Document(), nil
	}
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	doc, err := s.years.ReadYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		s.logger.Info("no data saved for year, starting empty", zap.Int("year", year))
		doc = domain.NewDocument()
	}
	s.load(doc)
	s.current = year

	s.logger.Info("switched year", zap.Int("year", year),
		zap.Int("clients", len(doc.Clients)),
		zap.Int("projects", len(doc.Projects)))
	return s.sync.Store.Document(), nil
}

// AddYear registers year with doc as its contents and switches to it.
// Imported projects without an owner become the importer's.
func (s *YearService) AddYear(ctx context.Context, year int, doc *domain.Document) ([]int, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: invalid year %d", ErrInvalidInput, year)
	}
	if doc == nil {
		doc = domain.NewDocument()
	}
	doc.Normalize()
	for i := range doc.Projects {
		if doc.Projects[i].CreatedBy == nil {
			doc.Projects[i].CreatedBy = user.CreatorRef()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.years.WriteYear(ctx, year, doc); err != nil {
		return nil, err
	}
	years, err := s.years.AddYear(ctx, year)
	if err != nil {
		return nil, err
	}

	if year != s.current {
		if err := s.saveLocked(ctx); err != nil {
			return nil, err
		}
	}
	s.load(doc)
	s.current = year

	s.logger.Info("year added",
		zap.Int("year", year),
		zap.Int("projects", len(doc.Projects)),
		zap.String("importedBy", user.Email))
	return years, nil
}

func (s *YearService) saveLocked(ctx context.Context) error {
	doc := s.sync.Store.Document()
	if doc.IsEmpty() {
		return nil
	}
	return s.years.WriteYear(ctx, s.current, doc)
}

func (s *YearService) load(doc *domain.Document) {
	s.sync.Clients.Reload(doc.Clients)
	s.sync.Projects.Reload(doc.Projects)
}
