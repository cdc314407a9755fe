package optimistic_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/jefanko/app-updates/internal/mirror"
	"github.com/jefanko/app-updates/internal/optimistic"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errRemote = errors.New("permission denied")

// fakeRemote records writes and fails them on demand. When gate is set every
// write blocks until the gate is closed.
type fakeRemote struct {
	mu       sync.Mutex
	err      error
	gate     chan struct{}
	inserted []domain.Client
	patches  map[string]map[string]interface{}
	deleted  []string
	seq      int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{patches: make(map[string]map[string]interface{})}
}

func (f *fakeRemote) wait(ctx context.Context) error {
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRemote) Insert(ctx context.Context, item domain.Client) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	f.inserted = append(f.inserted, item)
	return fmt.Sprintf("real-%d", f.seq), nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.patches[id] = patch
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func clientKey(c domain.Client) string {
	return string(c.Org) + "|" + c.Name
}

func newClientMutator(t *testing.T, remote *fakeRemote) (*optimistic.Mutator[domain.Client], *metrics.Metrics) {
	t.Helper()
	m := metrics.NewNop()
	return optimistic.New(optimistic.Config[domain.Client]{
		Table:        "clients",
		Collection:   mirror.NewCollection[domain.Client](),
		Remote:       remote,
		MatchKey:     clientKey,
		WriteTimeout: time.Second,
		Metrics:      m,
		Logger:       zap.NewNop(),
	}), m
}

func seed(mut *optimistic.Mutator[domain.Client], names ...string) {
	items := make([]domain.Client, len(names))
	for i, n := range names {
		items[i] = domain.Client{ID: n, Name: "name-" + n, Org: domain.OrgINA}
	}
	mut.Collection().Reset(items)
}

func TestTempID(t *testing.T) {
	id := optimistic.NewTempID()
	assert.True(t, optimistic.IsTempID(id))
	assert.NotEqual(t, id, optimistic.NewTempID())
	assert.False(t, optimistic.IsTempID("0b5b0a44-7d7e-4a3f-8d1c-111111111111"))
}

func TestCreate_SuccessThenReconcile(t *testing.T) {
	remote := newFakeRemote()
	mut, m := newClientMutator(t, remote)
	seed(mut, "a")

	tempID := mut.Create(context.Background(), domain.Client{Name: "PLN", Org: domain.OrgAI})

	items := mut.Collection().Items()
	require.Len(t, items, 2)
	assert.Equal(t, tempID, items[0].ID, "temporary entry is visible at the head immediately")
	assert.True(t, optimistic.IsTempID(items[0].ID))

	mut.Wait()
	require.Len(t, remote.inserted, 1)
	assert.Empty(t, remote.inserted[0].ID, "temporary id never reaches the remote")
	assert.Equal(t, 1, mut.Pending())

	mut.ApplyInsert(domain.Client{ID: "real-1", Name: "PLN", Org: domain.OrgAI})

	items = mut.Collection().Items()
	require.Len(t, items, 2, "authoritative insert supersedes the temporary entry")
	assert.Equal(t, "real-1", items[0].ID)
	assert.Equal(t, 0, mut.Pending())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Reconciled.WithLabelValues("clients")))
}

func TestCreate_FailureRestoresPreviousState(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errRemote
	mut, m := newClientMutator(t, remote)
	seed(mut, "a", "b")
	before := mut.Collection().Items()

	mut.Create(context.Background(), domain.Client{Name: "Broken", Org: domain.OrgAI})
	mut.Wait()

	assert.Equal(t, before, mut.Collection().Items())
	assert.Equal(t, 0, mut.Pending())
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.MutationFailures.WithLabelValues("clients", "create", metrics.OutcomeRolledBack)))
}

func TestCreate_FollowUpReceivesRemoteID(t *testing.T) {
	remote := newFakeRemote()
	mut, _ := newClientMutator(t, remote)

	got := make(chan string, 1)
	mut.CreateThen(context.Background(), domain.Client{Name: "X", Org: domain.OrgINA}, func(ctx context.Context, id string) {
		got <- id
	})
	mut.Wait()

	assert.Equal(t, "real-1", <-got)
}

func TestUpdate_FailureRestoresMutatedFields(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errRemote
	mut, _ := newClientMutator(t, remote)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mut.Collection().Reset([]domain.Client{
		{ID: "a", Name: "Old name", Org: domain.OrgAI, CreatedAt: created},
	})

	err := mut.Update(context.Background(), "a", func(c domain.Client) domain.Client {
		c.Name = "New name"
		return c
	}, map[string]interface{}{"name": "New name"})
	require.NoError(t, err)

	optimisticValue, _ := mut.Collection().Get("a")
	assert.Equal(t, "New name", optimisticValue.Name)

	mut.Wait()

	restored, ok := mut.Collection().Get("a")
	require.True(t, ok)
	assert.Equal(t, "Old name", restored.Name)
	assert.Equal(t, domain.OrgAI, restored.Org)
	assert.Equal(t, created, restored.CreatedAt)
}

func TestUpdate_Success(t *testing.T) {
	remote := newFakeRemote()
	mut, _ := newClientMutator(t, remote)
	seed(mut, "a")

	err := mut.Update(context.Background(), "a", func(c domain.Client) domain.Client {
		c.Name = "Renamed"
		return c
	}, map[string]interface{}{"name": "Renamed"})
	require.NoError(t, err)
	mut.Wait()

	got, _ := mut.Collection().Get("a")
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, map[string]interface{}{"name": "Renamed"}, remote.patches["a"])
}

func TestUpdate_Errors(t *testing.T) {
	mut, _ := newClientMutator(t, newFakeRemote())
	seed(mut, "a")
	identity := func(c domain.Client) domain.Client { return c }

	err := mut.Update(context.Background(), "missing", identity, nil)
	assert.ErrorIs(t, err, optimistic.ErrNotFound)

	err = mut.Update(context.Background(), optimistic.NewTempID(), identity, nil)
	assert.ErrorIs(t, err, optimistic.ErrPendingCreate)

	err = mut.Delete(context.Background(), optimistic.NewTempID())
	assert.ErrorIs(t, err, optimistic.ErrPendingCreate)

	err = mut.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, optimistic.ErrNotFound)
}

func TestDelete_FailureReinsertsAtOriginalIndex(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errRemote
	mut, _ := newClientMutator(t, remote)
	seed(mut, "a", "b", "c", "d")
	before := mut.Collection().Items()

	require.NoError(t, mut.Delete(context.Background(), "c"))
	assert.Equal(t, -1, mut.Collection().IndexOf("c"))

	mut.Wait()

	assert.Equal(t, 2, mut.Collection().IndexOf("c"))
	assert.Equal(t, before, mut.Collection().Items())
}

func TestDelete_Success(t *testing.T) {
	remote := newFakeRemote()
	mut, _ := newClientMutator(t, remote)
	seed(mut, "a", "b")

	require.NoError(t, mut.Delete(context.Background(), "a"))
	mut.Wait()

	assert.Equal(t, []string{"b"}, []string{mut.Collection().Items()[0].ID})
	assert.Equal(t, []string{"a"}, remote.deleted)
}

func TestRollback_SkippedWhenSuperseded(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		remote := newFakeRemote()
		remote.err = errRemote
		remote.gate = make(chan struct{})
		mut, m := newClientMutator(t, remote)
		seed(mut, "a")

		require.NoError(t, mut.Update(context.Background(), "a", func(c domain.Client) domain.Client {
			c.Name = "optimistic"
			return c
		}, map[string]interface{}{"name": "optimistic"}))

		mut.ApplyUpdate(domain.Client{ID: "a", Name: "from another user", Org: domain.OrgINA})
		close(remote.gate)
		mut.Wait()

		got, _ := mut.Collection().Get("a")
		assert.Equal(t, "from another user", got.Name)
		assert.Equal(t, float64(1), testutil.ToFloat64(
			m.MutationFailures.WithLabelValues("clients", "update", metrics.OutcomeSuperseded)))
	})

	t.Run("create", func(t *testing.T) {
		remote := newFakeRemote()
		remote.err = errRemote
		remote.gate = make(chan struct{})
		mut, _ := newClientMutator(t, remote)

		mut.Create(context.Background(), domain.Client{Name: "PLN", Org: domain.OrgAI})
		mut.ApplyInsert(domain.Client{ID: "real-9", Name: "PLN", Org: domain.OrgAI})
		close(remote.gate)
		mut.Wait()

		items := mut.Collection().Items()
		require.Len(t, items, 1)
		assert.Equal(t, "real-9", items[0].ID)
	})

	t.Run("create rewritten before failure", func(t *testing.T) {
		remote := newFakeRemote()
		remote.err = errRemote
		remote.gate = make(chan struct{})
		mut, m := newClientMutator(t, remote)

		tempID := mut.Create(context.Background(), domain.Client{Name: "PLN", Org: domain.OrgAI})
		_, _, _, ok := mut.Collection().Update(tempID, func(c domain.Client) domain.Client {
			c.Name = "PLN Persero"
			return c
		})
		require.True(t, ok)
		close(remote.gate)
		mut.Wait()

		got, ok := mut.Collection().Get(tempID)
		require.True(t, ok)
		assert.Equal(t, "PLN Persero", got.Name)
		assert.Equal(t, float64(1), testutil.ToFloat64(
			m.MutationFailures.WithLabelValues("clients", "create", metrics.OutcomeSuperseded)))
	})

	t.Run("delete", func(t *testing.T) {
		remote := newFakeRemote()
		remote.err = errRemote
		remote.gate = make(chan struct{})
		mut, _ := newClientMutator(t, remote)
		seed(mut, "a", "b")

		require.NoError(t, mut.Delete(context.Background(), "b"))
		mut.ApplyInsert(domain.Client{ID: "b", Name: "restored elsewhere", Org: domain.OrgINA})
		close(remote.gate)
		mut.Wait()

		assert.Equal(t, 2, mut.Collection().Len(), "entry is not inserted twice")
	})
}

func TestApplyEvents(t *testing.T) {
	mut, _ := newClientMutator(t, newFakeRemote())
	seed(mut, "a", "b")

	mut.ApplyInsert(domain.Client{ID: "c", Name: "third party", Org: domain.OrgAI})
	assert.Equal(t, "c", mut.Collection().Items()[0].ID)

	assert.True(t, mut.ApplyUpdate(domain.Client{ID: "b", Name: "changed"}))
	assert.Equal(t, 2, mut.Collection().IndexOf("b"))
	assert.False(t, mut.ApplyUpdate(domain.Client{ID: "unknown"}))

	// a repeated insert for a known id replaces instead of duplicating
	mut.ApplyInsert(domain.Client{ID: "c", Name: "again"})
	assert.Equal(t, 3, mut.Collection().Len())

	assert.True(t, mut.ApplyDelete("a"))
	assert.False(t, mut.ApplyDelete("a"))
	assert.Equal(t, 2, mut.Collection().Len())
}

func TestBatch_FailureRestoresList(t *testing.T) {
	mut, _ := newClientMutator(t, newFakeRemote())
	seed(mut, "a", "b")
	before := mut.Collection().Items()

	mut.Batch(context.Background(), func(items []domain.Client) []domain.Client {
		for i := range items {
			items[i].Name = "bulk"
		}
		return items
	}, func(ctx context.Context) error {
		return errRemote
	})
	mut.Wait()

	assert.Equal(t, before, mut.Collection().Items())
}

func TestReload_KeepsInFlightTemporaryEntries(t *testing.T) {
	remote := newFakeRemote()
	remote.gate = make(chan struct{})
	mut, _ := newClientMutator(t, remote)

	tempID := mut.Create(context.Background(), domain.Client{Name: "Pending", Org: domain.OrgAI})
	mut.Reload([]domain.Client{{ID: "x"}, {ID: "y"}})

	items := mut.Collection().Items()
	require.Len(t, items, 3)
	assert.Equal(t, tempID, items[0].ID)

	close(remote.gate)
	mut.Wait()

	// once confirmed, a reload containing the authoritative row drops the temp entry
	mut.Reload([]domain.Client{{ID: "real-1", Name: "Pending", Org: domain.OrgAI}, {ID: "x"}, {ID: "y"}})
	items = mut.Collection().Items()
	require.Len(t, items, 3)
	assert.Equal(t, "real-1", items[0].ID)
	assert.Equal(t, 0, mut.Pending())
}

func TestWriteTimeout_RollsBack(t *testing.T) {
	remote := newFakeRemote()
	remote.gate = make(chan struct{})
	defer close(remote.gate)

	mut := optimistic.New(optimistic.Config[domain.Client]{
		Table:        "clients",
		Collection:   mirror.NewCollection[domain.Client](),
		Remote:       remote,
		WriteTimeout: 20 * time.Millisecond,
	})

	mut.Create(context.Background(), domain.Client{Name: "Slow", Org: domain.OrgAI})
	mut.Wait()

	assert.Equal(t, 0, mut.Collection().Len())
}

func TestCreate_DetachedFromCallerCancellation(t *testing.T) {
	remote := newFakeRemote()
	mut, _ := newClientMutator(t, remote)

	ctx, cancel := context.WithCancel(context.Background())
	mut.Create(ctx, domain.Client{Name: "Request scoped", Org: domain.OrgAI})
	cancel()
	mut.Wait()

	assert.Len(t, remote.inserted, 1)
	assert.Equal(t, 1, mut.Collection().Len())
}
