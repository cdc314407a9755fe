package realtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/jefanko/app-updates/internal/mirror"
	"github.com/jefanko/app-updates/internal/optimistic"
	"github.com/jefanko/app-updates/internal/realtime"
	"github.com/jefanko/app-updates/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type okRemote[T any] struct{ next string }

func (r *okRemote[T]) Insert(ctx context.Context, item T) (string, error) { return r.next, nil }
func (r *okRemote[T]) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return nil
}
func (r *okRemote[T]) Delete(ctx context.Context, id string) error { return nil }

func newCommentMutator(remoteID string) *optimistic.Mutator[domain.Comment] {
	return optimistic.New(optimistic.Config[domain.Comment]{
		Table:      "comments",
		Collection: mirror.NewCollection[domain.Comment](),
		Remote:     &okRemote[domain.Comment]{next: remoteID},
		MatchKey: func(c domain.Comment) string {
			return c.ProjectID + "|" + c.UserEmail + "|" + c.Content
		},
	})
}

func TestDecodeEvent(t *testing.T) {
	payload := `{"table":"projects","type":"UPDATE","id":"p1","record":{"id":"p1","tender_status":"Win","created_by":{"id":"u1","name":"Ana","email":"ana@example.com"},"milestones":[{"id":"m1","subMilestones":[]}]}}`

	ev, err := realtime.DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "projects", ev.Table)
	assert.Equal(t, realtime.EventUpdate, ev.Type)
	assert.Equal(t, "Win", ev.Record["tenderStatus"])
	assert.Contains(t, ev.Record, "createdBy")
	assert.NotContains(t, ev.Record, "tender_status")
}

func TestDecodeEvent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `nope`},
		{"missing id", `{"table":"clients","type":"INSERT"}`},
		{"unknown type", `{"table":"clients","type":"TRUNCATE","id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := realtime.DecodeEvent(tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestEntitySink_InsertReconcilesTemporaryEntry(t *testing.T) {
	m := newCommentMutator("c-real")
	sink := realtime.NewEntitySink(realtime.SinkConfig[domain.Comment]{Applier: m})
	ctx := context.Background()

	tempID := m.Create(ctx, domain.Comment{ProjectID: "p1", UserEmail: "a@example.com", Content: "hello"})
	m.Wait()

	ev, err := realtime.DecodeEvent(`{"table":"comments","type":"INSERT","id":"c-real","record":{"id":"c-real","project_id":"p1","user_email":"a@example.com","content":"hello","created_at":"2026-01-02T03:04:05.123456+00:00"}}`)
	require.NoError(t, err)
	require.NoError(t, sink.Apply(ctx, ev))

	items := m.Collection().Items()
	require.Len(t, items, 1, "the authoritative record replaces the temporary one")
	assert.Equal(t, "c-real", items[0].ID)
	_, ok := m.Collection().Get(tempID)
	assert.False(t, ok)
	assert.Equal(t, 2026, items[0].CreatedAt.Year())
}

func TestEntitySink_UpdateAndDelete(t *testing.T) {
	m := newCommentMutator("")
	m.Collection().Reset([]domain.Comment{{ID: "c1", Content: "old"}})
	sink := realtime.NewEntitySink(realtime.SinkConfig[domain.Comment]{Applier: m})
	ctx := context.Background()

	require.NoError(t, sink.Apply(ctx, realtime.Event{
		Table: "comments", Type: realtime.EventUpdate, ID: "c1",
		Record: map[string]interface{}{"id": "c1", "content": "new"},
	}))
	got, _ := m.Collection().Get("c1")
	assert.Equal(t, "new", got.Content)

	require.NoError(t, sink.Apply(ctx, realtime.Event{
		Table: "comments", Type: realtime.EventUpdate, ID: "unknown",
		Record: map[string]interface{}{"id": "unknown"},
	}))
	assert.Equal(t, 1, m.Collection().Len(), "updates for unknown ids are ignored")

	require.NoError(t, sink.Apply(ctx, realtime.Event{Table: "comments", Type: realtime.EventDelete, ID: "c1"}))
	assert.Equal(t, 0, m.Collection().Len())
}

func TestEntitySink_FetchesOversizedRecords(t *testing.T) {
	m := newCommentMutator("")
	var fetched string
	sink := realtime.NewEntitySink(realtime.SinkConfig[domain.Comment]{
		Applier: m,
		Fetch: func(ctx context.Context, id string) (domain.Comment, error) {
			fetched = id
			return domain.Comment{ID: id, Content: "large"}, nil
		},
	})

	require.NoError(t, sink.Apply(context.Background(), realtime.Event{Table: "comments", Type: realtime.EventInsert, ID: "big"}))
	assert.Equal(t, "big", fetched)
	got, ok := m.Collection().Get("big")
	require.True(t, ok)
	assert.Equal(t, "large", got.Content)
}

func TestEntitySink_MissingRecordWithoutFetcher(t *testing.T) {
	sink := realtime.NewEntitySink(realtime.SinkConfig[domain.Comment]{Applier: newCommentMutator("")})
	err := sink.Apply(context.Background(), realtime.Event{Table: "comments", Type: realtime.EventInsert, ID: "x"})
	assert.Error(t, err)
}

func TestEntitySink_AcceptFilter(t *testing.T) {
	coll := mirror.NewCollection[domain.Notification]()
	m := optimistic.New(optimistic.Config[domain.Notification]{
		Table: "notifications", Collection: coll, Remote: &okRemote[domain.Notification]{},
	})
	sink := realtime.NewEntitySink(realtime.SinkConfig[domain.Notification]{
		Applier: m,
		Accept:  func(n domain.Notification) bool { return n.UserEmail == "me@example.com" },
	})
	ctx := context.Background()

	require.NoError(t, sink.Apply(ctx, realtime.Event{Table: "notifications", Type: realtime.EventInsert, ID: "n1",
		Record: map[string]interface{}{"id": "n1", "userEmail": "someone@example.com"}}))
	require.NoError(t, sink.Apply(ctx, realtime.Event{Table: "notifications", Type: realtime.EventInsert, ID: "n2",
		Record: map[string]interface{}{"id": "n2", "userEmail": "me@example.com"}}))

	require.Equal(t, 1, coll.Len())
	assert.Equal(t, "n2", coll.Items()[0].ID)
}

type recordingSink struct {
	mu      sync.Mutex
	events  []realtime.Event
	resyncs int
	err     error
}

func (s *recordingSink) Apply(ctx context.Context, ev realtime.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resyncs++
	return s.err
}

func TestDispatcher_RoutesByTable(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	d := realtime.NewDispatcher(m, zap.NewNop())
	clients := &recordingSink{}
	projects := &recordingSink{err: errors.New("offline")}
	d.Register("clients", clients)
	d.Register("projects", projects)
	ctx := context.Background()

	require.NoError(t, d.Dispatch(ctx, realtime.Event{Table: "clients", Type: realtime.EventInsert, ID: "1"}))
	require.NoError(t, d.Dispatch(ctx, realtime.Event{Table: "audit", Type: realtime.EventInsert, ID: "2"}))

	assert.Len(t, clients.events, 1)
	assert.Equal(t, []string{"clients", "projects"}, d.Tables())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChangeEvents.WithLabelValues("clients", "INSERT")))

	err := d.Resync(ctx)
	assert.Error(t, err)
	assert.Equal(t, 1, clients.resyncs)
	assert.Equal(t, 1, projects.resyncs)
}

type versionSource struct {
	mu sync.Mutex
	v  repository.Version
}

func (s *versionSource) set(count int64, at string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = repository.Version{Count: count, UpdatedAt: at}
}

func (s *versionSource) Version(ctx context.Context) (repository.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v, nil
}

func TestVersionPoller_ResyncsChangedTablesOnly(t *testing.T) {
	d := realtime.NewDispatcher(nil, zap.NewNop())
	clients, projects := &recordingSink{}, &recordingSink{}
	d.Register("clients", clients)
	d.Register("projects", projects)

	clientVersion, projectVersion := &versionSource{}, &versionSource{}
	clientVersion.set(1, "t1")
	projectVersion.set(3, "t1")

	p := realtime.NewVersionPoller(d, zap.NewNop())
	p.Track("clients", clientVersion)
	p.Track("projects", projectVersion)
	ctx := context.Background()

	assert.Empty(t, p.Poll(ctx), "first poll only records versions")

	clientVersion.set(1, time.Now().String())
	assert.Equal(t, []string{"clients"}, p.Poll(ctx))
	assert.Empty(t, p.Poll(ctx))

	assert.Equal(t, 1, clients.resyncs)
	assert.Zero(t, projects.resyncs)
}
