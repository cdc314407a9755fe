package handler

import (
	"net/http"

	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

// SyncHandler exposes the mirror's sync state
type SyncHandler struct {
	sync   *service.Sync
	logger *zap.Logger
}

func NewSyncHandler(sync *service.Sync, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{sync: sync, logger: logger}
}

// SyncStatusDTO reports unreconciled temporary entries per table
type SyncStatusDTO struct {
	Pending map[string]int `json:"pending"`
}

// Status godoc
// @Summary Get sync status
// @Tags Sync
// @Produce json
// @Success 200 {object} SyncStatusDTO
// @Router /sync [get]
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SyncStatusDTO{Pending: h.sync.Pending()})
}

// Refresh godoc
// @Summary Reload mirrored tables from the remote store
// @Tags Sync
// @Param table query string false "Table to reload; all tables when empty"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /sync/refresh [post]
func (h *SyncHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if err := h.sync.Refresh(r.Context(), table); err != nil {
		respondServiceError(w, h.logger, err, "refresh "+tableLabel(table))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tableLabel(table string) string {
	if table == "" {
		return "all tables"
	}
	return table
}
