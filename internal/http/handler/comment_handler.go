package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService *service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// List godoc
// @Summary List project comments
// @Description Comments of a project, oldest first
// @Tags Comments
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.Comment
// @Router /projects/{id}/comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.commentService.ListByProject(r.Context(), chi.URLParam(r, "id")))
}

// Create godoc
// @Summary Post comment
// @Description Replies attach to the root of the thread. The project owner is notified unless they wrote the comment.
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := h.commentService.Create(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create comment")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// Delete godoc
// @Summary Delete comment
// @Description Only the author or an admin may delete
// @Tags Comments
// @Param commentId path string true "Comment ID"
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.commentService.Delete(r.Context(), chi.URLParam(r, "commentId")); err != nil {
		respondServiceError(w, h.logger, err, "delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
