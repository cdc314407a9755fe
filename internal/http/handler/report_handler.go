package handler

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/report"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// Dashboard godoc
// @Summary Get dashboard
// @Description Status counts, total and win value, upcoming and overdue deadlines
// @Tags Reports
// @Produce json
// @Param org query string false "Filter by org" Enums(INA, AI)
// @Success 200 {object} report.Dashboard
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	org, ok := orgParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid org")
		return
	}
	respondJSON(w, http.StatusOK, h.reportService.Dashboard(r.Context(), org))
}

func weeklyFilter(r *http.Request) report.WeeklyFilter {
	q := r.URL.Query()
	return report.WeeklyFilter{
		Status: domain.TenderStatus(q.Get("status")),
		Search: q.Get("search"),
	}
}

// Weekly godoc
// @Summary Get weekly report rows
// @Tags Reports
// @Produce json
// @Param org query string false "Filter by org" Enums(INA, AI)
// @Param status query string false "Filter by tender status"
// @Param search query string false "Match project or customer name"
// @Success 200 {array} report.WeeklyRow
// @Router /reports/weekly [get]
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	org, ok := orgParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid org")
		return
	}
	respondJSON(w, http.StatusOK, h.reportService.WeeklyRows(r.Context(), org, weeklyFilter(r)))
}

// ExportWeekly godoc
// @Summary Export weekly report
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param org query string false "Filter by org" Enums(INA, AI)
// @Param status query string false "Filter by tender status"
// @Param search query string false "Match project or customer name"
// @Success 200
// @Router /reports/weekly/export [get]
func (h *ReportHandler) ExportWeekly(w http.ResponseWriter, r *http.Request) {
	org, ok := orgParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid org")
		return
	}

	// Buffered so a failed export can still produce a JSON error
	var buf bytes.Buffer
	name, err := h.reportService.ExportWeekly(r.Context(), org, weeklyFilter(r), &buf)
	if err != nil {
		respondServiceError(w, h.logger, err, "export weekly report")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
