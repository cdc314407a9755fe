package service

import (
	"context"
	"testing"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/milestone"
	"github.com/jefanko/app-updates/internal/optimistic"
	"github.com/jefanko/app-updates/internal/repository"
	"github.com/jefanko/app-updates/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSync_LoadKeepsFailedTablesEmpty(t *testing.T) {
	f := newFakeBackends()
	f.clients.seed(domain.Client{ID: "c1", Name: "PT PLN", Org: domain.OrgAI})
	f.projects.listErr = errRemoteDown
	f.notifications.seed(
		domain.Notification{ID: "n1", UserEmail: "alice@ina.co.id"},
		domain.Notification{ID: "n2", UserEmail: "bob@ina.co.id"},
	)
	s := newTestSync(t, f, alice)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteDown)

	assert.Equal(t, 1, s.Store.Clients.Len())
	assert.Equal(t, 0, s.Store.Projects.Len())

	notes := s.Store.Notifications.Items()
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
}

func TestSync_NotificationEventsForOtherUsersAreIgnored(t *testing.T) {
	f := newFakeBackends()
	s := newTestSync(t, f, alice)
	ctx := context.Background()

	require.NoError(t, s.Dispatcher().Dispatch(ctx,
		insertEvent(t, "notifications", "n1", domain.Notification{ID: "n1", UserEmail: "bob@ina.co.id"})))
	require.NoError(t, s.Dispatcher().Dispatch(ctx,
		insertEvent(t, "notifications", "n2", domain.Notification{ID: "n2", UserEmail: "Alice@ina.co.id"})))

	notes := s.Store.Notifications.Items()
	require.Len(t, notes, 1)
	assert.Equal(t, "n2", notes[0].ID)
}

// An optimistic create shows up at once under a temporary id; the listener's
// insert replaces it so the list holds exactly one entry.
func TestSync_CreateReconciledByListener(t *testing.T) {
	f := newFakeBackends()
	s := newTestSync(t, f, alice)
	svc := NewClientService(s, zap.NewNop())
	ctx := userCtx(alice)

	created, err := svc.Create(ctx, &domain.CreateClientRequest{Name: "PT PLN", Org: domain.OrgAI})
	require.NoError(t, err)
	assert.True(t, optimistic.IsTempID(created.ID))
	assert.Equal(t, 1, s.Store.Clients.Len())

	s.Wait()
	rows := f.clients.inserted()
	require.Len(t, rows, 1)
	realID := rows[0].ID

	require.NoError(t, s.Dispatcher().Dispatch(context.Background(), insertEvent(t, "clients", realID, rows[0])))

	items := s.Store.Clients.Items()
	require.Len(t, items, 1)
	assert.Equal(t, realID, items[0].ID)
	assert.Equal(t, "PT PLN", items[0].Name)
	assert.Zero(t, s.Clients.Pending())
}

// A failed create leaves the mirror exactly as it was before the mutation.
func TestSync_CreateFailureRestoresMirror(t *testing.T) {
	f := newFakeBackends()
	f.clients.seed(
		domain.Client{ID: "c1", Name: "PT PLN", Org: domain.OrgAI},
		domain.Client{ID: "c2", Name: "PT Krakatau", Org: domain.OrgAI},
	)
	s := newTestSync(t, f, alice)
	require.NoError(t, s.Load(context.Background()))
	before := s.Store.Clients.Items()

	f.clients.failWith(errRemoteDown)
	svc := NewClientService(s, zap.NewNop())
	_, err := svc.Create(userCtx(alice), &domain.CreateClientRequest{Name: "PT Baru", Org: domain.OrgAI})
	require.NoError(t, err)

	s.Wait()
	assert.Equal(t, before, s.Store.Clients.Items())
	assert.Zero(t, s.Clients.Pending())
}

// A failed update restores the mutated fields and leaves the others alone.
func TestSync_UpdateFailureRestoresFields(t *testing.T) {
	f := newFakeBackends()
	f.projects.seed(domain.Project{
		ID: "p1", Name: "Gardu Induk", Org: domain.OrgINA, Location: "Bandung",
		TenderStatus: domain.TenderStatusSurvey, CreatedBy: alice.CreatorRef(),
	})
	s := newTestSync(t, f, alice)
	require.NoError(t, s.Load(context.Background()))

	gate := f.projects.block()
	f.projects.failWith(errRemoteDown)
	svc := NewProjectService(s, zap.NewNop())

	status := domain.TenderStatusWin
	updated, err := svc.Update(userCtx(alice), "p1", &domain.UpdateProjectRequest{TenderStatus: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TenderStatusWin, updated.TenderStatus)

	close(gate)
	s.Wait()

	p, ok := s.Store.Projects.Get("p1")
	require.True(t, ok)
	assert.Equal(t, domain.TenderStatusSurvey, p.TenderStatus)
	assert.Equal(t, "Gardu Induk", p.Name)
	assert.Equal(t, "Bandung", p.Location)
}

// A failed delete puts the entry back at the index it occupied.
func TestSync_DeleteFailureReinsertsAtIndex(t *testing.T) {
	f := newFakeBackends()
	f.clients.seed(
		domain.Client{ID: "c1", Name: "A", Org: domain.OrgAI},
		domain.Client{ID: "c2", Name: "B", Org: domain.OrgAI},
		domain.Client{ID: "c3", Name: "C", Org: domain.OrgAI},
	)
	s := newTestSync(t, f, alice)
	require.NoError(t, s.Load(context.Background()))

	f.clients.failWith(errRemoteDown)
	svc := NewClientService(s, zap.NewNop())
	require.NoError(t, svc.Delete(userCtx(alice), "c2"))

	s.Wait()
	items := s.Store.Clients.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "c2", items[1].ID)
}

// Two installations replace the same milestone list; the second remote
// write is the one the store keeps.
func TestSync_MilestoneListLastWriteWins(t *testing.T) {
	f := newFakeBackends()
	f.projects.seed(domain.Project{ID: "p1", Name: "Feeder", Org: domain.OrgINA, Milestones: domain.Milestones{}})

	first := newTestSync(t, f, alice)
	second := newTestSync(t, f, bob)
	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, second.Load(context.Background()))

	now := time.Now()
	a := milestone.New(domain.CreateMilestoneRequest{Name: "Survey"}, now)
	b := milestone.New(domain.CreateMilestoneRequest{Name: "Quotation"}, now)

	_, err := NewProjectService(first, zap.NewNop()).UpdateMilestones(userCtx(alice), "p1", milestone.Add(a))
	require.NoError(t, err)
	first.Wait()

	_, err = NewProjectService(second, zap.NewNop()).UpdateMilestones(userCtx(bob), "p1", milestone.Add(b))
	require.NoError(t, err)
	second.Wait()

	final, ok := f.projects.lastPatch("p1")["milestones"].(domain.Milestones)
	require.True(t, ok)
	require.Len(t, final, 1)
	assert.Equal(t, "Quotation", final[0].Name)
}

func TestSync_WithSQLiteRepositories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := NewSync(NewBackends(db), alice, SyncConfig{Logger: zap.NewNop()})
	ctx := userCtx(alice)

	_, err := NewClientService(s, zap.NewNop()).Create(ctx, &domain.CreateClientRequest{Name: "PT PLN", Org: domain.OrgAI})
	require.NoError(t, err)
	s.Wait()

	require.NoError(t, s.Load(context.Background()))
	items := s.Store.Clients.Items()
	require.Len(t, items, 1)
	assert.False(t, optimistic.IsTempID(items[0].ID))
	assert.Equal(t, "alice@ina.co.id", items[0].CreatedBy.Email)

	stored, err := repository.NewClientRepository(db).Get(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "PT PLN", stored.Name)
}

func TestSync_RefreshTable(t *testing.T) {
	f := newFakeBackends()
	s := newTestSync(t, f, alice)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 0, s.Store.Clients.Len())

	f.clients.seed(domain.Client{ID: "c1", Name: "PT PLN", Org: domain.OrgAI})
	require.NoError(t, s.Refresh(ctx, "clients"))
	assert.Equal(t, 1, s.Store.Clients.Len())

	assert.ErrorIs(t, s.Refresh(ctx, "invoices"), ErrNotFound)
	assert.Equal(t, 0, s.Pending()["clients"])
}
