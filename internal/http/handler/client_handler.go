package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clientService: clientService, logger: logger}
}

// List godoc
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param org query string false "Filter by org" Enums(INA, AI)
// @Param search query string false "Case-insensitive name match"
// @Success 200 {array} domain.Client
// @Failure 400 {object} domain.APIError
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	org, ok := orgParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid org")
		return
	}
	respondJSON(w, http.StatusOK, h.clientService.List(r.Context(), org, r.URL.Query().Get("search")))
}

// GetByID godoc
// @Summary Get client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 404 {object} domain.APIError
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get client")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.Client
// @Failure 400 {object} domain.APIError
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create client")
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

// Rename godoc
// @Summary Rename client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.UpdateClientRequest true "New name"
// @Success 200 {object} domain.Client
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /clients/{id} [put]
func (h *ClientHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	client, err := h.clientService.Rename(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "rename client")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Delete godoc
// @Summary Delete client
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
