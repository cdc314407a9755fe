package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/service"
	"go.uber.org/zap"
)

// FileHandler serves checklist attachments
type FileHandler struct {
	attachmentService *service.AttachmentService
	logger            *zap.Logger
}

func NewFileHandler(attachmentService *service.AttachmentService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// OpenResult reports whether the file was handed to the operating system
type OpenResult struct {
	Opened bool `json:"opened"`
}

// Attach godoc
// @Summary Attach a document to a checklist item
// @Description Copies a file from the local disk into attachment storage
// @Tags Files
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.AttachFileRequest true "Item and source path"
// @Success 201 {object} domain.AttachedFile
// @Failure 400 {object} domain.APIError
// @Router /projects/{id}/attachments [post]
func (h *FileHandler) Attach(w http.ResponseWriter, r *http.Request) {
	var req domain.AttachFileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	file, err := h.attachmentService.Attach(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "attach file")
		return
	}
	respondJSON(w, http.StatusCreated, file)
}

// Open godoc
// @Summary Open an attachment with the default application
// @Tags Files
// @Accept json
// @Produce json
// @Param request body domain.OpenFileRequest true "Stored file path"
// @Success 200 {object} OpenResult
// @Failure 400 {object} domain.APIError
// @Router /files/open [post]
func (h *FileHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenFileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	opened, err := h.attachmentService.Open(r.Context(), req.FilePath)
	if err != nil {
		respondServiceError(w, h.logger, err, "open file")
		return
	}
	respondJSON(w, http.StatusOK, OpenResult{Opened: opened})
}

// Download godoc
// @Summary Download an attachment
// @Tags Files
// @Produce application/octet-stream
// @Param path query string true "Stored file path"
// @Success 200
// @Failure 404 {object} domain.APIError
// @Router /files/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("path")
	if location == "" {
		respondWithError(w, http.StatusBadRequest, "path is required")
		return
	}

	reader, filename, err := h.attachmentService.Download(r.Context(), location)
	if err != nil {
		respondServiceError(w, h.logger, err, "download file")
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("download interrupted", zap.String("path", location), zap.Error(err))
	}
}

// ExportZip godoc
// @Summary Export attachments as a ZIP archive
// @Description Writes the archive to destPath, appending .zip when missing. Missing files are skipped.
// @Tags Files
// @Accept json
// @Produce json
// @Param request body domain.ExportZipRequest true "Files and destination"
// @Success 200 {object} archive.Result
// @Failure 400 {object} domain.APIError
// @Router /files/zip [post]
func (h *FileHandler) ExportZip(w http.ResponseWriter, r *http.Request) {
	var req domain.ExportZipRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.attachmentService.ExportZip(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "export attachments")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
