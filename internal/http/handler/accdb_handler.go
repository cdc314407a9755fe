package handler

import (
	"errors"
	"net/http"

	"github.com/jefanko/app-updates/internal/accdb"
	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

// AccdbHandler reads legacy Access databases for import
type AccdbHandler struct {
	reader *accdb.Reader
	logger *zap.Logger
}

func NewAccdbHandler(reader *accdb.Reader, logger *zap.Logger) *AccdbHandler {
	return &AccdbHandler{reader: reader, logger: logger}
}

// Read godoc
// @Summary Read an Access database
// @Description Returns every table with its columns and rows. Tables that fail to export carry an error instead.
// @Tags Import
// @Accept json
// @Produce json
// @Param request body domain.ReadAccessDBRequest true "Database path"
// @Success 200 {object} accdb.Database
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /import/accdb [post]
func (h *AccdbHandler) Read(w http.ResponseWriter, r *http.Request) {
	var req domain.ReadAccessDBRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	db, err := h.reader.Read(r.Context(), req.FilePath)
	if err != nil {
		if errors.Is(err, accdb.ErrFileNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to read access database", zap.String("path", req.FilePath), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to read database: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, db)
}
