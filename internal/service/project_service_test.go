package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/milestone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProjectFixture(t *testing.T) (*fakeBackends, *Sync, *ProjectService) {
	t.Helper()
	f := newFakeBackends()
	f.clients.seed(domain.Client{ID: "c1", Name: "PT PLN", Org: domain.OrgAI})
	f.projects.seed(
		domain.Project{ID: "p-alice", Name: "Gardu Induk", Org: domain.OrgINA, CreatedBy: alice.CreatorRef(), Milestones: domain.Milestones{}},
		domain.Project{ID: "p-legacy", Name: "Old tender", Org: domain.OrgINA},
	)
	s := newTestSync(t, f, alice)
	require.NoError(t, s.Load(context.Background()))
	return f, s, NewProjectService(s, zap.NewNop())
}

func TestProjectService_CreateDefaults(t *testing.T) {
	_, s, svc := newProjectFixture(t)

	dto, err := svc.Create(userCtx(alice), &domain.CreateProjectRequest{
		Name:     "  Substation 150kV ",
		Org:      domain.OrgINA,
		ClientID: strPtr("c1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Substation 150kV", dto.Name)
	assert.Equal(t, domain.TenderStatusInProgress, dto.TenderStatus)
	assert.Equal(t, "Alice", dto.PIC)
	assert.Nil(t, dto.ClientID, "INA projects never carry a client")
	assert.Equal(t, "alice@ina.co.id", dto.CreatedBy.Email)
	assert.NotNil(t, dto.Milestones)
	assert.True(t, dto.CanEdit)

	first := s.Store.Projects.Items()[0]
	assert.Equal(t, dto.ID, first.ID)
}

func TestProjectService_CreateValidation(t *testing.T) {
	_, _, svc := newProjectFixture(t)
	ctx := userCtx(alice)

	tests := []struct {
		name string
		req  domain.CreateProjectRequest
		want error
	}{
		{"missing name", domain.CreateProjectRequest{Name: " ", Org: domain.OrgINA}, ErrInvalidInput},
		{"unknown org", domain.CreateProjectRequest{Name: "X", Org: "XYZ"}, ErrInvalidInput},
		{"AI without client", domain.CreateProjectRequest{Name: "X", Org: domain.OrgAI}, ErrInvalidInput},
		{"AI with unknown client", domain.CreateProjectRequest{Name: "X", Org: domain.OrgAI, ClientID: strPtr("nope")}, ErrInvalidInput},
		{"AI with pending client", domain.CreateProjectRequest{Name: "X", Org: domain.OrgAI, ClientID: strPtr("temp-1")}, ErrConflict},
		{"bad status", domain.CreateProjectRequest{Name: "X", Org: domain.OrgINA, TenderStatus: "Maybe"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Create(ctx, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.Create(context.Background(), &domain.CreateProjectRequest{Name: "X", Org: domain.OrgINA})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProjectService_CreateAIProject(t *testing.T) {
	_, _, svc := newProjectFixture(t)

	dto, err := svc.Create(userCtx(alice), &domain.CreateProjectRequest{
		Name: "Trafo", Org: domain.OrgAI, ClientID: strPtr("c1"), PIC: "Rudi",
		TenderStatus: domain.TenderStatusQuotation,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ClientID)
	assert.Equal(t, "c1", *dto.ClientID)
	assert.Equal(t, "Rudi", dto.PIC)
	assert.Equal(t, domain.TenderStatusQuotation, dto.TenderStatus)
}

func TestProjectService_Permissions(t *testing.T) {
	_, _, svc := newProjectFixture(t)
	name := "Renamed"

	_, err := svc.Update(userCtx(bob), "p-alice", &domain.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(userCtx(bob), "p-alice"), ErrPermissionDenied)

	_, err = svc.Update(userCtx(bob), "p-legacy", &domain.UpdateProjectRequest{Name: &name})
	assert.NoError(t, err, "projects without a creator are editable by anyone")

	_, err = svc.Update(userCtx(admin), "p-alice", &domain.UpdateProjectRequest{Name: &name})
	assert.NoError(t, err)

	list := svc.List(userCtx(bob), ProjectFilter{})
	canEdit := map[string]bool{}
	for _, p := range list {
		canEdit[p.ID] = p.CanEdit
	}
	assert.False(t, canEdit["p-alice"])
	assert.True(t, canEdit["p-legacy"])
}

func TestProjectService_UpdatePatch(t *testing.T) {
	f, s, svc := newProjectFixture(t)
	price := 1250000.0
	expenses := domain.TenderExpenses{{ID: "e1", Name: "Printing", Amount: 250}}

	dto, err := svc.Update(userCtx(alice), "p-alice", &domain.UpdateProjectRequest{
		QuotationPrice: &price,
		Remarks:        strPtr("follow up"),
		DueDate:        strPtr(""),
		TenderExpenses: &expenses,
	})
	require.NoError(t, err)
	assert.Equal(t, price, dto.QuotationPrice)
	assert.Equal(t, 250.0, dto.ExpensesTotal)
	assert.Nil(t, dto.DueDate)

	s.Wait()
	patch := f.projects.lastPatch("p-alice")
	assert.Equal(t, price, patch["quotationPrice"])
	assert.Equal(t, "follow up", patch["remarks"])
	assert.Contains(t, patch, "dueDate")
	assert.NotContains(t, patch, "name")
}

func TestProjectService_UpdateNotFound(t *testing.T) {
	_, _, svc := newProjectFixture(t)
	_, err := svc.Update(userCtx(alice), "missing", &domain.UpdateProjectRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(userCtx(alice), "temp-123", &domain.UpdateProjectRequest{})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProjectService_UpdateMilestones(t *testing.T) {
	f, s, svc := newProjectFixture(t)
	ctx := userCtx(alice)

	m := milestone.New(domain.CreateMilestoneRequest{Name: "Survey"}, time.Now())
	list, err := svc.UpdateMilestones(ctx, "p-alice", milestone.Add(m))
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.UpdateMilestones(ctx, "p-alice", milestone.AddSub(m.ID, "Site visit"))
	require.NoError(t, err)
	require.Len(t, list[0].SubMilestones, 1)
	subID := list[0].SubMilestones[0].ID

	_, err = svc.UpdateMilestones(ctx, "p-alice", milestone.Toggle(m.ID))
	assert.ErrorIs(t, err, ErrConflict, "completion follows the sub-milestones")

	second := milestone.New(domain.CreateMilestoneRequest{Name: "Quotation", Status: domain.MilestoneStatusDone}, time.Now())
	_, err = svc.UpdateMilestones(ctx, "p-alice", milestone.Add(second))
	require.NoError(t, err)
	_, err = svc.UpdateMilestones(ctx, "p-alice", milestone.ToggleSub(m.ID, subID))
	require.NoError(t, err)
	_, err = svc.UpdateMilestones(ctx, "p-alice", milestone.ToggleSub(m.ID, subID))
	require.NoError(t, err)

	dto, err := svc.GetByID(ctx, "p-alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Completed: 1, Total: 2, Percentage: 50}, dto.Progress)

	_, err = svc.UpdateMilestones(ctx, "p-alice", milestone.Delete("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	s.Wait()
	patch := f.projects.lastPatch("p-alice")
	written, ok := patch["milestones"].(domain.Milestones)
	require.True(t, ok)
	assert.Len(t, written, 2)
}

func TestProjectService_UpdateMilestonesRollback(t *testing.T) {
	f, s, svc := newProjectFixture(t)
	f.projects.failWith(errors.New("timeout"))

	m := milestone.New(domain.CreateMilestoneRequest{Name: "Survey"}, time.Now())
	_, err := svc.UpdateMilestones(userCtx(alice), "p-alice", milestone.Add(m))
	require.NoError(t, err)

	s.Wait()
	p, ok := s.Store.Projects.Get("p-alice")
	require.True(t, ok)
	assert.Empty(t, p.Milestones)
}

func TestProjectService_Delete(t *testing.T) {
	f, s, svc := newProjectFixture(t)
	require.NoError(t, svc.Delete(userCtx(alice), "p-alice"))
	_, ok := s.Store.Projects.Get("p-alice")
	assert.False(t, ok)

	s.Wait()
	_, err := f.projects.Get(context.Background(), "p-alice")
	assert.Error(t, err)
}
