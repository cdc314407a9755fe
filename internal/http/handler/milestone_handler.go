package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/milestone"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

// MilestoneHandler edits the milestone list embedded in a project. Every
// route rewrites the whole list.
type MilestoneHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
	now            func() time.Time
}

func NewMilestoneHandler(projectService *service.ProjectService, logger *zap.Logger) *MilestoneHandler {
	return &MilestoneHandler{
		projectService: projectService,
		logger:         logger,
		now:            time.Now,
	}
}

func (h *MilestoneHandler) apply(w http.ResponseWriter, r *http.Request, status int, t milestone.Transform) {
	list, err := h.projectService.UpdateMilestones(r.Context(), chi.URLParam(r, "id"), t)
	if err != nil {
		respondServiceError(w, h.logger, err, "update milestones")
		return
	}
	respondJSON(w, status, list)
}

// Add godoc
// @Summary Add milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.CreateMilestoneRequest true "Milestone"
// @Success 201 {array} domain.Milestone
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones [post]
func (h *MilestoneHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMilestoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, http.StatusCreated, milestone.Add(milestone.New(req, h.now())))
}

// Update godoc
// @Summary Update milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Param request body domain.UpdateMilestoneRequest true "Fields to change"
// @Success 200 {array} domain.Milestone
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId} [put]
func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMilestoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, http.StatusOK, milestone.Update(chi.URLParam(r, "milestoneId"), req))
}

// Toggle godoc
// @Summary Toggle milestone completion
// @Description Rejected with 409 when the milestone has sub-milestones, since its completion is derived from them
// @Tags Milestones
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Success 200 {array} domain.Milestone
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId}/toggle [post]
func (h *MilestoneHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, http.StatusOK, milestone.Toggle(chi.URLParam(r, "milestoneId")))
}

// Delete godoc
// @Summary Delete milestone
// @Tags Milestones
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Success 200 {array} domain.Milestone
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId} [delete]
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, http.StatusOK, milestone.Delete(chi.URLParam(r, "milestoneId")))
}

// AddSub godoc
// @Summary Add sub-milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Param request body domain.SubMilestoneRequest true "Sub-milestone"
// @Success 201 {array} domain.Milestone
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId}/subs [post]
func (h *MilestoneHandler) AddSub(w http.ResponseWriter, r *http.Request) {
	var req domain.SubMilestoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, http.StatusCreated, milestone.AddSub(chi.URLParam(r, "milestoneId"), req.Name))
}

// ToggleSub godoc
// @Summary Toggle sub-milestone
// @Tags Milestones
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Param subId path string true "Sub-milestone ID"
// @Success 200 {array} domain.Milestone
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId}/subs/{subId}/toggle [post]
func (h *MilestoneHandler) ToggleSub(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, http.StatusOK, milestone.ToggleSub(chi.URLParam(r, "milestoneId"), chi.URLParam(r, "subId")))
}

// RenameSub godoc
// @Summary Rename sub-milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Param subId path string true "Sub-milestone ID"
// @Param request body domain.SubMilestoneRequest true "New name"
// @Success 200 {array} domain.Milestone
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId}/subs/{subId} [put]
func (h *MilestoneHandler) RenameSub(w http.ResponseWriter, r *http.Request) {
	var req domain.SubMilestoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, http.StatusOK,
		milestone.RenameSub(chi.URLParam(r, "milestoneId"), chi.URLParam(r, "subId"), req.Name))
}

// DeleteSub godoc
// @Summary Delete sub-milestone
// @Tags Milestones
// @Produce json
// @Param id path string true "Project ID"
// @Param milestoneId path string true "Milestone ID"
// @Param subId path string true "Sub-milestone ID"
// @Success 200 {array} domain.Milestone
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/milestones/{milestoneId}/subs/{subId} [delete]
func (h *MilestoneHandler) DeleteSub(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, http.StatusOK, milestone.DeleteSub(chi.URLParam(r, "milestoneId"), chi.URLParam(r, "subId")))
}
