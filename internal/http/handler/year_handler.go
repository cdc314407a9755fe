package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

type YearHandler struct {
	yearService *service.YearService
	logger      *zap.Logger
}

func NewYearHandler(yearService *service.YearService, logger *zap.Logger) *YearHandler {
	return &YearHandler{yearService: yearService, logger: logger}
}

// YearsDTO lists the saved years and the one shown
type YearsDTO struct {
	Years   []int `json:"years"`
	Current int   `json:"current"`
}

// List godoc
// @Summary List years
// @Tags Years
// @Produce json
// @Success 200 {object} YearsDTO
// @Router /years [get]
func (h *YearHandler) List(w http.ResponseWriter, r *http.Request) {
	years, err := h.yearService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list years")
		return
	}
	respondJSON(w, http.StatusOK, YearsDTO{Years: years, Current: h.yearService.Current()})
}

// Switch godoc
// @Summary Switch the year shown
// @Description Saves the current year's clients and projects, then loads the requested year
// @Tags Years
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Router /years/{year}/switch [post]
func (h *YearHandler) Switch(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	doc, err := h.yearService.Switch(r.Context(), year)
	if err != nil {
		respondServiceError(w, h.logger, err, "switch year")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// Add godoc
// @Summary Add a year
// @Description Registers the year with the given document and switches to it
// @Tags Years
// @Accept json
// @Produce json
// @Param request body domain.AddYearRequest true "Year and contents"
// @Success 201 {object} YearsDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /years [post]
func (h *YearHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.AddYearRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	years, err := h.yearService.AddYear(r.Context(), req.Year, req.Document)
	if err != nil {
		respondServiceError(w, h.logger, err, "add year")
		return
	}
	respondJSON(w, http.StatusCreated, YearsDTO{Years: years, Current: h.yearService.Current()})
}
