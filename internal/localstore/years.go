package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

type yearsConfig struct {
	Years []int `json:"years"`
}

// YearStore keeps one document per year next to the main document
type YearStore struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

// NewYearStore creates a year store over backend
func NewYearStore(backend Backend, logger *zap.Logger) *YearStore {
	return &YearStore{backend: backend, logger: logger, now: time.Now}
}

// CurrentYear returns the calendar year used as the default partition
func (s *YearStore) CurrentYear() int {
	return s.now().Year()
}

// ListYears returns the known years, newest first. Without a saved list the
// current year is the only one.
func (s *YearStore) ListYears(ctx context.Context) ([]int, error) {
	raw, err := s.backend.Read(ctx, YearsConfig)
	if errors.Is(err, ErrNotExist) {
		return []int{s.CurrentYear()}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg yearsConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("years config is unreadable, using the current year", zap.Error(err))
		return []int{s.CurrentYear()}, nil
	}
	if len(cfg.Years) == 0 {
		return []int{s.CurrentYear()}, nil
	}
	return sortYears(cfg.Years), nil
}

// AddYear registers year and returns the updated list
func (s *YearStore) AddYear(ctx context.Context, year int) ([]int, error) {
	years, err := s.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	for _, y := range years {
		if y == year {
			return years, nil
		}
	}
	years = sortYears(append(years, year))

	raw, err := json.MarshalIndent(yearsConfig{Years: years}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := s.backend.Write(ctx, YearsConfig, raw); err != nil {
		return nil, fmt.Errorf("failed to save years config: %w", err)
	}
	return years, nil
}

// ReadYear returns the document saved for year, or nil if none was saved or
// the saved one cannot be decoded
func (s *YearStore) ReadYear(ctx context.Context, year int) (*domain.Document, error) {
	raw, err := s.backend.Read(ctx, YearDocument(year))
	if errors.Is(err, ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.Warn("year partition is unreadable, starting empty",
			zap.Int("year", year),
			zap.Error(err))
		return nil, nil
	}
	return doc.Normalize(), nil
}

// WriteYear saves doc as the partition for year
func (s *YearStore) WriteYear(ctx context.Context, year int, doc *domain.Document) error {
	if doc == nil {
		doc = domain.NewDocument()
	}
	raw, err := json.MarshalIndent(doc.Normalize(), "", "  ")
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, YearDocument(year), raw); err != nil {
		return fmt.Errorf("failed to save year %d: %w", year, err)
	}
	return nil
}

func sortYears(years []int) []int {
	seen := make(map[int]bool, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
