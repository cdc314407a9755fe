package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

type ChecklistHandler struct {
	checklistService *service.ChecklistService
	logger           *zap.Logger
}

func NewChecklistHandler(checklistService *service.ChecklistService, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, logger: logger}
}

// List godoc
// @Summary List checklists
// @Tags Checklists
// @Produce json
// @Param org query string false "Filter by org" Enums(INA, AI)
// @Success 200 {array} domain.Checklist
// @Router /checklists [get]
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	org, ok := orgParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid org")
		return
	}
	respondJSON(w, http.StatusOK, h.checklistService.List(r.Context(), org))
}

// GetByID godoc
// @Summary Get checklist
// @Tags Checklists
// @Produce json
// @Param id path string true "Checklist ID"
// @Success 200 {object} domain.Checklist
// @Failure 404 {object} domain.APIError
// @Router /checklists/{id} [get]
func (h *ChecklistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.checklistService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get checklist")
		return
	}
	respondJSON(w, http.StatusOK, checklist)
}

// Create godoc
// @Summary Create checklist
// @Tags Checklists
// @Accept json
// @Produce json
// @Param request body domain.CreateChecklistRequest true "Checklist"
// @Success 201 {object} domain.Checklist
// @Failure 400 {object} domain.APIError
// @Router /checklists [post]
func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateChecklistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	checklist, err := h.checklistService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create checklist")
		return
	}
	respondJSON(w, http.StatusCreated, checklist)
}

// Update godoc
// @Summary Update checklist
// @Tags Checklists
// @Accept json
// @Produce json
// @Param id path string true "Checklist ID"
// @Param request body domain.UpdateChecklistRequest true "Fields to change"
// @Success 200 {object} domain.Checklist
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /checklists/{id} [put]
func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateChecklistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	checklist, err := h.checklistService.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update checklist")
		return
	}
	respondJSON(w, http.StatusOK, checklist)
}

// Delete godoc
// @Summary Delete checklist
// @Tags Checklists
// @Param id path string true "Checklist ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /checklists/{id} [delete]
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.checklistService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "delete checklist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
