package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/localstore"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

// LocalHandler exposes the on-disk document store
type LocalHandler struct {
	localService *service.LocalService
	logger       *zap.Logger
}

func NewLocalHandler(localService *service.LocalService, logger *zap.Logger) *LocalHandler {
	return &LocalHandler{localService: localService, logger: logger}
}

// PathDTO reports where the local document lives
type PathDTO struct {
	Path string `json:"path"`
}

// GetPath godoc
// @Summary Get local database path
// @Tags Local
// @Produce json
// @Success 200 {object} PathDTO
// @Router /local/path [get]
func (h *LocalHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PathDTO{Path: h.localService.Path()})
}

// SetPath godoc
// @Summary Relocate the local database
// @Description Only supported by the file backend
// @Tags Local
// @Accept json
// @Produce json
// @Param request body domain.DBPathRequest true "New path"
// @Success 200 {object} PathDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /local/path [put]
func (h *LocalHandler) SetPath(w http.ResponseWriter, r *http.Request) {
	var req domain.DBPathRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	path, err := h.localService.SetPath(r.Context(), req.Path)
	if err != nil {
		respondServiceError(w, h.logger, err, "set database path")
		return
	}
	respondJSON(w, http.StatusOK, PathDTO{Path: path})
}

// Refresh godoc
// @Summary Reload the local database from disk
// @Tags Local
// @Success 204
// @Router /local/refresh [post]
func (h *LocalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.localService.Refresh(r.Context()); err != nil {
		respondServiceError(w, h.logger, err, "refresh local database")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDocument godoc
// @Summary Get the local document
// @Tags Local
// @Produce json
// @Success 200 {object} domain.Document
// @Router /local/document [get]
func (h *LocalHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.localService.Document(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "read local document")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// SaveDocument godoc
// @Summary Replace the local document
// @Tags Local
// @Accept json
// @Param request body domain.Document true "Clients and projects"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Router /local/document [put]
func (h *LocalHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := h.localService.SaveDocument(r.Context(), doc.Normalize()); err != nil {
		respondServiceError(w, h.logger, err, "save local document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Collections godoc
// @Summary List local collections
// @Tags Local
// @Produce json
// @Success 200 {array} string
// @Router /local/collections [get]
func (h *LocalHandler) Collections(w http.ResponseWriter, r *http.Request) {
	names, err := h.localService.Collections(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list collections")
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// List godoc
// @Summary List records of a local collection
// @Tags Local
// @Produce json
// @Param collection path string true "Collection name"
// @Success 200 {array} object
// @Router /local/collections/{collection} [get]
func (h *LocalHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.localService.List(r.Context(), chi.URLParam(r, "collection"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Get godoc
// @Summary Get a local record
// @Tags Local
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} domain.APIError
// @Router /local/collections/{collection}/{id} [get]
func (h *LocalHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.localService.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Add godoc
// @Summary Add a local record
// @Description An id and createdAt are assigned
// @Tags Local
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param request body object true "Record"
// @Success 201 {object} object
// @Failure 400 {object} domain.APIError
// @Router /local/collections/{collection} [post]
func (h *LocalHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item localstore.Record
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	record, err := h.localService.Add(r.Context(), chi.URLParam(r, "collection"), item)
	if err != nil {
		respondServiceError(w, h.logger, err, "add record")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// Update godoc
// @Summary Merge fields into a local record
// @Tags Local
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Record ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} object
// @Failure 404 {object} domain.APIError
// @Router /local/collections/{collection}/{id} [put]
func (h *LocalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var updates localstore.Record
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	record, err := h.localService.Update(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), updates)
	if err != nil {
		respondServiceError(w, h.logger, err, "update record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a local record
// @Tags Local
// @Param collection path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /local/collections/{collection}/{id} [delete]
func (h *LocalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.localService.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "delete record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
