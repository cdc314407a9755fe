package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/realtime"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errRemoteDown = errors.New("remote unavailable")

// memBackend is an in-memory remote table. Writes fail while err is set and
// block while gate is non-nil.
type memBackend[T domain.Entity[T]] struct {
	mu      sync.Mutex
	rows    []T
	patches map[string][]map[string]interface{}
	err     error
	listErr error
	gate    chan struct{}
	seq     int
	prefix  string
}

func newMemBackend[T domain.Entity[T]](prefix string) *memBackend[T] {
	return &memBackend[T]{patches: make(map[string][]map[string]interface{}), prefix: prefix}
}

func (b *memBackend[T]) failWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

func (b *memBackend[T]) block() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gate = make(chan struct{})
	return b.gate
}

func (b *memBackend[T]) wait(ctx context.Context) error {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *memBackend[T]) Insert(ctx context.Context, item T) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	b.seq++
	id := fmt.Sprintf("%s-%d", b.prefix, b.seq)
	b.rows = append([]T{item.WithID(id)}, b.rows...)
	return id, nil
}

func (b *memBackend[T]) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.patches[id] = append(b.patches[id], patch)
	return nil
}

func (b *memBackend[T]) Delete(ctx context.Context, id string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	for i, row := range b.rows {
		if row.EntityID() == id {
			b.rows = append(b.rows[:i:i], b.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("row not found")
}

func (b *memBackend[T]) Get(ctx context.Context, id string) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.rows {
		if row.EntityID() == id {
			return row, nil
		}
	}
	var zero T
	return zero, errors.New("row not found")
}

func (b *memBackend[T]) List(ctx context.Context) ([]T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]T{}, b.rows...), nil
}

func (b *memBackend[T]) seed(rows ...T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, rows...)
}

func (b *memBackend[T]) lastPatch(id string) map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.patches[id]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func (b *memBackend[T]) inserted() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]T{}, b.rows...)
}

type memNotifications struct {
	*memBackend[domain.Notification]
	markAllFor []string
}

func (b *memNotifications) ListForUser(ctx context.Context, email string) ([]domain.Notification, error) {
	rows, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Notification{}
	for _, n := range rows {
		if strings.EqualFold(n.UserEmail, email) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (b *memNotifications) MarkAllAsRead(ctx context.Context, email string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.markAllFor = append(b.markAllFor, email)
	return nil
}

type fakeBackends struct {
	clients       *memBackend[domain.Client]
	projects      *memBackend[domain.Project]
	comments      *memBackend[domain.Comment]
	notifications *memNotifications
	checklists    *memBackend[domain.Checklist]
}

func newFakeBackends() *fakeBackends {
	return &fakeBackends{
		clients:       newMemBackend[domain.Client]("client"),
		projects:      newMemBackend[domain.Project]("project"),
		comments:      newMemBackend[domain.Comment]("comment"),
		notifications: &memNotifications{memBackend: newMemBackend[domain.Notification]("notification")},
		checklists:    newMemBackend[domain.Checklist]("checklist"),
	}
}

func (f *fakeBackends) backends() Backends {
	return Backends{
		Clients:       f.clients,
		Projects:      f.projects,
		Comments:      f.comments,
		Notifications: f.notifications,
		Checklists:    f.checklists,
	}
}

var (
	alice = &auth.UserContext{UserID: "u-alice", DisplayName: "Alice", Email: "alice@ina.co.id"}
	bob   = &auth.UserContext{UserID: "u-bob", DisplayName: "Bob", Email: "bob@ina.co.id"}
	admin = &auth.UserContext{UserID: "u-admin", DisplayName: "Admin", Email: "admin@ina.co.id", IsAdmin: true}
)

func userCtx(u *auth.UserContext) context.Context {
	return auth.WithUserContext(context.Background(), u)
}

func newTestSync(t *testing.T, f *fakeBackends, user *auth.UserContext) *Sync {
	t.Helper()
	s := NewSync(f.backends(), user, SyncConfig{Logger: zap.NewNop()})
	t.Cleanup(s.Wait)
	return s
}

// insertEvent builds the change event the trigger would publish for item
func insertEvent[T any](t *testing.T, table, id string, item T) realtime.Event {
	t.Helper()
	data, err := json.Marshal(item)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	return realtime.Event{Table: table, Type: realtime.EventInsert, ID: id, Record: record}
}

func strPtr(s string) *string { return &s }
