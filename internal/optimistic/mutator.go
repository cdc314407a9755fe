// Package optimistic applies mutations to the local mirror before the remote
// store confirms them, and reverts them precisely when the remote write fails.
package optimistic

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/jefanko/app-updates/internal/mirror"
	"go.uber.org/zap"
)

// TempIDPrefix marks identifiers assigned locally before the remote insert
const TempIDPrefix = "temp-"

var (
	// ErrNotFound is returned when the target entry is not in the mirror
	ErrNotFound = errors.New("entry not found in local mirror")

	// ErrPendingCreate is returned when updating or deleting an entry whose
	// remote insert has not been reconciled yet
	ErrPendingCreate = errors.New("entry is still being created")
)

// Op names a mutation kind for logs and metrics
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpBatch  Op = "batch"
)

// NewTempID returns a fresh temporary identifier
func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

// IsTempID reports whether id was assigned locally
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Remote is the remote write surface of one table. Insert returns the new
// row's identifier but never the row itself.
type Remote[T any] interface {
	Insert(ctx context.Context, item T) (string, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// Config configures a Mutator
type Config[T domain.Entity[T]] struct {
	Table      string
	Collection *mirror.Collection[T]
	Remote     Remote[T]
	// MatchKey derives the identity used to pair a temporary entry with the
	// authoritative insert event. Nil disables pairing.
	MatchKey     func(T) string
	WriteTimeout time.Duration
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

// Mutator owns optimistic writes for one table
type Mutator[T domain.Entity[T]] struct {
	table    string
	coll     *mirror.Collection[T]
	remote   Remote[T]
	matchKey func(T) string
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
	pending  *pendingSet
	wg       sync.WaitGroup
}

// New creates a Mutator
func New[T domain.Entity[T]](cfg Config[T]) *Mutator[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.NewNop()
	}
	return &Mutator[T]{
		table:    cfg.Table,
		coll:     cfg.Collection,
		remote:   cfg.Remote,
		matchKey: cfg.MatchKey,
		timeout:  cfg.WriteTimeout,
		metrics:  m,
		logger:   logger.With(zap.String("table", cfg.Table)),
		pending:  newPendingSet(),
	}
}

// Table returns the remote table name
func (m *Mutator[T]) Table() string {
	return m.table
}

// Collection returns the mirrored collection
func (m *Mutator[T]) Collection() *mirror.Collection[T] {
	return m.coll
}

// Create inserts draft at the head of the mirror under a temporary id and
// starts the remote insert. It returns immediately and never fails.
func (m *Mutator[T]) Create(ctx context.Context, draft T) string {
	return m.CreateThen(ctx, draft, nil)
}

// CreateThen is Create with a follow-up that runs after a successful remote
// insert, receiving the identifier the remote assigned.
func (m *Mutator[T]) CreateThen(ctx context.Context, draft T, then func(ctx context.Context, id string)) string {
	tempID := NewTempID()
	rev := m.coll.Prepend(draft.WithID(tempID))
	if m.matchKey != nil {
		m.pending.add(m.matchKey(draft), tempID)
	}
	m.metrics.MutationsApplied.WithLabelValues(m.table, string(OpCreate)).Inc()

	payload := draft.WithID("")
	m.write(ctx, OpCreate, tempID,
		func(ctx context.Context) error {
			id, err := m.remote.Insert(ctx, payload)
			if err != nil {
				return err
			}
			m.pending.confirm(tempID)
			if then != nil {
				then(ctx, id)
			}
			return nil
		},
		func() bool {
			m.pending.drop(tempID)
			return m.coll.RemoveIf(tempID, rev)
		},
	)
	return tempID
}

// Update applies fn to the entry locally and sends patch to the remote. On
// failure the snapshot taken before fn ran is restored, unless the entry has
// been written again since.
func (m *Mutator[T]) Update(ctx context.Context, id string, fn func(T) T, patch map[string]interface{}) error {
	if IsTempID(id) {
		return ErrPendingCreate
	}
	prev, _, rev, ok := m.coll.Update(id, fn)
	if !ok {
		return ErrNotFound
	}
	m.metrics.MutationsApplied.WithLabelValues(m.table, string(OpUpdate)).Inc()

	m.write(ctx, OpUpdate, id,
		func(ctx context.Context) error {
			return m.remote.Update(ctx, id, patch)
		},
		func() bool {
			return m.coll.RestoreIf(id, rev, prev)
		},
	)
	return nil
}

// Delete removes the entry locally and deletes it remotely. On failure the
// entry is put back at the index it occupied.
func (m *Mutator[T]) Delete(ctx context.Context, id string) error {
	if IsTempID(id) {
		return ErrPendingCreate
	}
	removed, index, ok := m.coll.Remove(id)
	if !ok {
		return ErrNotFound
	}
	m.metrics.MutationsApplied.WithLabelValues(m.table, string(OpDelete)).Inc()

	m.write(ctx, OpDelete, id,
		func(ctx context.Context) error {
			return m.remote.Delete(ctx, id)
		},
		func() bool {
			return m.coll.ReinsertIfAbsent(index, removed)
		},
	)
	return nil
}

// Batch applies fn to the whole list and runs remoteWrite. On failure the
// previous list is restored if the collection was not written in between.
func (m *Mutator[T]) Batch(ctx context.Context, fn func([]T) []T, remoteWrite func(ctx context.Context) error) {
	prev, gen := m.coll.MutateAll(fn)
	m.metrics.MutationsApplied.WithLabelValues(m.table, string(OpBatch)).Inc()

	m.write(ctx, OpBatch, "", remoteWrite, func() bool {
		return m.coll.ResetIf(gen, prev)
	})
}

// ApplyInsert applies an authoritative insert from the change feed. A
// pending temporary entry with the same match key is replaced in place;
// otherwise the record is prepended.
func (m *Mutator[T]) ApplyInsert(item T) {
	if _, _, ok := m.coll.Replace(item); ok {
		return
	}
	if m.matchKey != nil {
		if tempID, ok := m.pending.take(m.matchKey(item)); ok && m.coll.ReplaceID(tempID, item) {
			m.metrics.Reconciled.WithLabelValues(m.table).Inc()
			m.logger.Debug("temporary entry reconciled",
				zap.String("temp_id", tempID),
				zap.String("id", item.EntityID()))
			return
		}
	}
	m.coll.Prepend(item)
}

// ApplyUpdate replaces the entry carrying item's id; unknown ids are ignored
func (m *Mutator[T]) ApplyUpdate(item T) bool {
	_, _, ok := m.coll.Replace(item)
	return ok
}

// ApplyDelete removes the entry with the given id
func (m *Mutator[T]) ApplyDelete(id string) bool {
	_, _, ok := m.coll.Remove(id)
	return ok
}

// Reload replaces the collection with an authoritative list. Temporary
// entries whose remote insert is still in flight stay at the head.
func (m *Mutator[T]) Reload(items []T) {
	keep := m.coll.Filter(func(item T) bool {
		return IsTempID(item.EntityID()) && m.pending.inFlight(item.EntityID())
	})
	m.pending.dropConfirmed()
	m.coll.Reset(append(keep, items...))
}

// Pending returns the number of temporary entries awaiting reconciliation
func (m *Mutator[T]) Pending() int {
	return m.pending.len()
}

// Wait blocks until every in-flight remote write has finished
func (m *Mutator[T]) Wait() {
	m.wg.Wait()
}

func (m *Mutator[T]) write(ctx context.Context, op Op, id string, fn func(context.Context) error, rollback func() bool) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		wctx := context.WithoutCancel(ctx)
		var cancel context.CancelFunc
		if m.timeout > 0 {
			wctx, cancel = context.WithTimeout(wctx, m.timeout)
		} else {
			wctx, cancel = context.WithCancel(wctx)
		}
		defer cancel()

		start := time.Now()
		err := fn(wctx)
		m.metrics.RemoteWriteDuration.WithLabelValues(m.table, string(op)).Observe(time.Since(start).Seconds())
		if err == nil {
			return
		}

		outcome := metrics.OutcomeSuperseded
		if rollback() {
			outcome = metrics.OutcomeRolledBack
		}
		m.metrics.MutationFailures.WithLabelValues(m.table, string(op), outcome).Inc()
		m.logger.Warn("remote write failed",
			zap.String("op", string(op)),
			zap.String("id", id),
			zap.String("outcome", outcome),
			zap.Error(err))
	}()
}
