package realtime

import (
	"context"
	"fmt"

	"github.com/jefanko/app-updates/internal/domain"
)

// Sink applies events for one table
type Sink interface {
	Apply(ctx context.Context, ev Event) error
	Resync(ctx context.Context) error
}

// Applier is the mirror-facing half of an optimistic mutator
type Applier[T any] interface {
	ApplyInsert(item T)
	ApplyUpdate(item T) bool
	ApplyDelete(id string) bool
	Reload(items []T)
}

// SinkConfig configures an EntitySink
type SinkConfig[T domain.Entity[T]] struct {
	Applier Applier[T]
	// Fetch reads one row; used when the event carries no record
	Fetch func(ctx context.Context, id string) (T, error)
	// Load reads the full authoritative list for a resync
	Load func(ctx context.Context) ([]T, error)
	// Accept drops rows the local user does not mirror. Nil accepts all.
	Accept func(T) bool
}

// EntitySink translates change events into mirror updates for T
type EntitySink[T domain.Entity[T]] struct {
	cfg SinkConfig[T]
}

// NewEntitySink creates a sink
func NewEntitySink[T domain.Entity[T]](cfg SinkConfig[T]) *EntitySink[T] {
	return &EntitySink[T]{cfg: cfg}
}

// Apply applies a single event
func (s *EntitySink[T]) Apply(ctx context.Context, ev Event) error {
	if ev.Type == EventDelete {
		s.cfg.Applier.ApplyDelete(ev.ID)
		return nil
	}

	item, err := s.record(ctx, ev)
	if err != nil {
		return err
	}
	if s.cfg.Accept != nil && !s.cfg.Accept(item) {
		return nil
	}

	switch ev.Type {
	case EventInsert:
		s.cfg.Applier.ApplyInsert(item)
	case EventUpdate:
		s.cfg.Applier.ApplyUpdate(item)
	}
	return nil
}

// Resync replaces the mirrored list with the authoritative one
func (s *EntitySink[T]) Resync(ctx context.Context) error {
	if s.cfg.Load == nil {
		return nil
	}
	items, err := s.cfg.Load(ctx)
	if err != nil {
		return err
	}
	s.cfg.Applier.Reload(items)
	return nil
}

func (s *EntitySink[T]) record(ctx context.Context, ev Event) (T, error) {
	if ev.Record != nil {
		item, err := decodeRecord[T](ev.Record)
		if err != nil {
			return item, fmt.Errorf("failed to decode %s record: %w", ev.Table, err)
		}
		return item, nil
	}

	var zero T
	if s.cfg.Fetch == nil {
		return zero, fmt.Errorf("%s event for %s carries no record", ev.Type, ev.ID)
	}
	item, err := s.cfg.Fetch(ctx, ev.ID)
	if err != nil {
		return zero, fmt.Errorf("failed to fetch %s %s: %w", ev.Table, ev.ID, err)
	}
	return item, nil
}
