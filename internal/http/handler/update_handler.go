package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jefanko/app-updates/internal/updater"
	"go.uber.org/zap"
)

const sseHeartbeat = 30 * time.Second

// UpdateHandler drives the update channel
type UpdateHandler struct {
	updater *updater.Updater
	logger  *zap.Logger
}

func NewUpdateHandler(u *updater.Updater, logger *zap.Logger) *UpdateHandler {
	return &UpdateHandler{updater: u, logger: logger}
}

// CheckResult is the outcome of an update check
type CheckResult struct {
	Available bool                 `json:"available"`
	Info      *updater.ReleaseInfo `json:"info,omitempty"`
}

func (h *UpdateHandler) respondUpdateError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, updater.ErrDisabled),
		errors.Is(err, updater.ErrNoUpdate),
		errors.Is(err, updater.ErrNothingDownloaded):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Warn("update "+action+" failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("Failed to %s update: %v", action, err))
	}
}

// Status godoc
// @Summary Get update status
// @Tags Updates
// @Produce json
// @Success 200 {object} updater.Status
// @Router /updates [get]
func (h *UpdateHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.updater.Status())
}

// Check godoc
// @Summary Check for updates
// @Tags Updates
// @Produce json
// @Success 200 {object} CheckResult
// @Failure 409 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Router /updates/check [post]
func (h *UpdateHandler) Check(w http.ResponseWriter, r *http.Request) {
	info, err := h.updater.Check(r.Context())
	if err != nil {
		h.respondUpdateError(w, err, "check")
		return
	}
	respondJSON(w, http.StatusOK, CheckResult{Available: info != nil, Info: info})
}

// Download godoc
// @Summary Download the available update
// @Description Starts the download in the background; progress is reported on the events stream
// @Tags Updates
// @Success 202
// @Failure 409 {object} domain.APIError
// @Router /updates/download [post]
func (h *UpdateHandler) Download(w http.ResponseWriter, r *http.Request) {
	if !h.updater.Enabled() {
		h.respondUpdateError(w, updater.ErrDisabled, "download")
		return
	}
	if h.updater.Status().Available == nil {
		h.respondUpdateError(w, updater.ErrNoUpdate, "download")
		return
	}
	ctx := context.WithoutCancel(r.Context())
	go func() {
		if _, err := h.updater.Download(ctx); err != nil {
			h.logger.Warn("update download failed", zap.Error(err))
		}
	}()
	w.WriteHeader(http.StatusAccepted)
}

// Install godoc
// @Summary Restart and install the downloaded update
// @Tags Updates
// @Success 202
// @Failure 409 {object} domain.APIError
// @Router /updates/install [post]
func (h *UpdateHandler) Install(w http.ResponseWriter, r *http.Request) {
	if err := h.updater.RestartAndInstall(); err != nil {
		h.respondUpdateError(w, err, "install")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Events godoc
// @Summary Stream update events
// @Description Server-sent events: checking, available, not-available, error, progress, downloaded
// @Tags Updates
// @Produce text/event-stream
// @Success 200
// @Router /updates/events [get]
func (h *UpdateHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	// The stream outlives the server's write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn("failed to clear write deadline for event stream", zap.Error(err))
	}

	events, unsubscribe := h.updater.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
