package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/optimistic"
	"github.com/jefanko/app-updates/internal/service"
	"github.com/jefanko/app-updates/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func projectRoutes(env *testEnv, user *auth.UserContext) http.Handler {
	projects := service.NewProjectService(env.sync, zap.NewNop())
	ph := NewProjectHandler(projects, zap.NewNop())
	mh := NewMilestoneHandler(projects, zap.NewNop())
	return withUser(user, func(r chi.Router) {
		r.Get("/projects", ph.List)
		r.Post("/projects", ph.Create)
		r.Get("/projects/{id}", ph.GetByID)
		r.Put("/projects/{id}", ph.Update)
		r.Delete("/projects/{id}", ph.Delete)
		r.Post("/projects/{id}/milestones", mh.Add)
		r.Post("/projects/{id}/milestones/{milestoneId}/toggle", mh.Toggle)
		r.Post("/projects/{id}/milestones/{milestoneId}/subs", mh.AddSub)
		r.Post("/projects/{id}/milestones/{milestoneId}/subs/{subId}/toggle", mh.ToggleSub)
	})
}

func TestProjectHandler_CreateThenReconcile(t *testing.T) {
	env := newTestEnv(t)
	env.load(t)
	h := projectRoutes(env, alice)

	rec := doRequest(t, h, http.MethodPost, "/projects", map[string]interface{}{
		"name": "Gardu Induk Cikarang", "org": "INA", "quotationPrice": 1500000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.ProjectDTO](t, rec)
	assert.True(t, optimistic.IsTempID(created.ID))
	assert.Equal(t, "Alice", created.PIC)
	assert.True(t, created.CanEdit)

	env.sync.Wait()
	require.NoError(t, env.sync.Refresh(context.Background(), "projects"))

	rec = doRequest(t, h, http.MethodGet, "/projects?org=INA", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.ProjectDTO](t, rec)
	require.Len(t, list, 1)
	assert.False(t, optimistic.IsTempID(list[0].ID))
	assert.Equal(t, "Gardu Induk Cikarang", list[0].Name)

	rec = doRequest(t, h, http.MethodGet, "/projects/"+list[0].ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	env.load(t)
	h := projectRoutes(env, alice)

	rec := doRequest(t, h, http.MethodPost, "/projects", map[string]interface{}{"org": "INA"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// AI projects need a client
	rec = doRequest(t, h, http.MethodPost, "/projects", map[string]interface{}{"name": "Trafo", "org": "AI"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, projectRoutes(env, nil), http.MethodPost, "/projects", map[string]interface{}{"name": "Trafo", "org": "INA"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjectHandler_UpdatePermissions(t *testing.T) {
	env := newTestEnv(t)
	owned := testutil.CreateTestProject(t, env.db, "Owned", alice.CreatorRef())
	env.load(t)

	rec := doRequest(t, projectRoutes(env, bob), http.MethodPut, "/projects/"+owned.ID, map[string]interface{}{"location": "Bekasi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, projectRoutes(env, alice), http.MethodPut, "/projects/"+owned.ID, map[string]interface{}{"location": "Bekasi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Bekasi", decode[domain.ProjectDTO](t, rec).Location)
	env.sync.Wait()

	var stored domain.Project
	require.NoError(t, env.db.First(&stored, "id = ?", owned.ID).Error)
	assert.Equal(t, "Bekasi", stored.Location)

	rec = doRequest(t, projectRoutes(env, alice), http.MethodPut, "/projects/missing", map[string]interface{}{"location": "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, projectRoutes(env, alice), http.MethodPut, "/projects/"+optimistic.NewTempID(), map[string]interface{}{"location": "X"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProjectHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.CreateTestProject(t, env.db, "Old", nil)
	env.load(t)
	h := projectRoutes(env, alice)

	rec := doRequest(t, h, http.MethodDelete, "/projects/"+p.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	env.sync.Wait()

	rec = doRequest(t, h, http.MethodGet, "/projects/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMilestoneHandler_SubMilestonesDriveCompletion(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.CreateTestProject(t, env.db, "Trafo", alice.CreatorRef())
	env.load(t)
	h := projectRoutes(env, alice)
	base := "/projects/" + p.ID + "/milestones"

	rec := doRequest(t, h, http.MethodPost, base, map[string]interface{}{"name": "Survey"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	list := decode[domain.Milestones](t, rec)
	require.Len(t, list, 1)
	msID := list[0].ID

	rec = doRequest(t, h, http.MethodPost, base+"/"+msID+"/subs", map[string]string{"name": "Site visit"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, h, http.MethodPost, base+"/"+msID+"/subs", map[string]string{"name": "Report"})
	require.Equal(t, http.StatusCreated, rec.Code)
	list = decode[domain.Milestones](t, rec)
	require.Len(t, list[0].SubMilestones, 2)

	// Completion is derived once sub-milestones exist
	rec = doRequest(t, h, http.MethodPost, base+"/"+msID+"/toggle", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	subID := list[0].SubMilestones[0].ID
	rec = doRequest(t, h, http.MethodPost, base+"/"+msID+"/subs/"+subID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[domain.Milestones](t, rec)[0].IsComplete())

	rec = doRequest(t, h, http.MethodPost, base+"/"+msID+"/subs/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/projects/"+p.ID, nil)
	dto := decode[domain.ProjectDTO](t, rec)
	assert.Equal(t, domain.Progress{Completed: 0, Total: 1, Percentage: 0}, dto.Progress)
}
