package handler

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/report"
	"github.com/jefanko/app-updates/internal/service"
	"github.com/jefanko/app-updates/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func reportRoutes(env *testEnv) http.Handler {
	rh := NewReportHandler(service.NewReportService(env.sync, zap.NewNop()), zap.NewNop())
	return withUser(alice, func(r chi.Router) {
		r.Get("/reports/dashboard", rh.Dashboard)
		r.Get("/reports/weekly", rh.Weekly)
		r.Get("/reports/weekly/export", rh.ExportWeekly)
	})
}

func TestReportHandler_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestProject(t, env.db, "Trafo", nil)
	testutil.CreateTestProject(t, env.db, "Gardu", nil)
	env.load(t)
	h := reportRoutes(env)

	rec := doRequest(t, h, http.MethodGet, "/reports/dashboard?org=INA", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode[report.Dashboard](t, rec)
	assert.Equal(t, 2, d.Total)

	rec = doRequest(t, h, http.MethodGet, "/reports/dashboard?org=XX", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_ExportWeekly(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestProject(t, env.db, "Trafo", nil)
	env.load(t)

	rec := doRequest(t, reportRoutes(env), http.MethodGet, "/reports/weekly/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment; filename=Weekly_Report_"), disposition)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	found := false
	for _, row := range rows {
		for _, cell := range row {
			if cell == "Trafo" {
				found = true
			}
		}
	}
	assert.True(t, found, "project row missing from export")
}
