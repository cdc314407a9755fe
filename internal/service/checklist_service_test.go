package service

import (
	"context"
	"testing"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChecklistService_CRUD(t *testing.T) {
	f := newFakeBackends()
	f.checklists.seed(domain.Checklist{ID: "cl-ai", Org: domain.OrgAI, Name: "AI tender documents"})
	s := newTestSync(t, f, alice)
	require.NoError(t, s.Load(context.Background()))
	svc := NewChecklistService(s, zap.NewNop())
	ctx := userCtx(alice)

	created, err := svc.Create(ctx, &domain.CreateChecklistRequest{
		Org:  domain.OrgINA,
		Name: " Tender documents ",
		Items: domain.ChecklistItems{
			{Requirement: "Company profile"},
			{ID: "keep", Requirement: "Tax registration"},
		},
		Approvers: domain.Approvers{{Name: "Manager"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tender documents", created.Name)
	assert.NotEmpty(t, created.Items[0].ID)
	assert.Equal(t, "keep", created.Items[1].ID)
	assert.NotEmpty(t, created.Approvers[0].ID)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, alice.Email, created.CreatedBy.Email)
	assert.Empty(t, created.CreatedBy.ID)

	assert.Len(t, svc.List(ctx, domain.OrgINA), 1)
	assert.Len(t, svc.List(ctx, ""), 2)

	_, err = svc.Create(ctx, &domain.CreateChecklistRequest{Org: domain.OrgINA, Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s.Wait()
	id := f.checklists.inserted()[0].ID
	require.NoError(t, s.Refresh(ctx, "checklists"))

	deficiencies := "missing stamp"
	updated, err := svc.Update(ctx, id, &domain.UpdateChecklistRequest{Deficiencies: &deficiencies})
	require.NoError(t, err)
	assert.Equal(t, deficiencies, updated.Deficiencies)
	assert.NotNil(t, updated.UpdatedAt)

	s.Wait()
	assert.Equal(t, map[string]interface{}{"deficiencies": deficiencies}, f.checklists.lastPatch(id))

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound)
}
