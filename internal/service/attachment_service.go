package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/archive"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/shell"
	"github.com/jefanko/app-updates/internal/storage"
	"go.uber.org/zap"
)

// AttachmentDir is the storage prefix for checklist attachments
const AttachmentDir = "checklist-files"

// AttachmentService copies checklist documents into storage, opens them and
// exports them as archives
type AttachmentService struct {
	storage       storage.Storage
	opener        shell.Opener
	maxUploadSize int64
	logger        *zap.Logger
	now           func() time.Time
}

// NewAttachmentService creates a new AttachmentService. A maxUploadSize of
// zero disables the size check.
func NewAttachmentService(store storage.Storage, opener shell.Opener, maxUploadSize int64, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		storage:       store,
		opener:        opener,
		maxUploadSize: maxUploadSize,
		logger:        logger,
		now:           time.Now,
	}
}

// Attach copies the file at req.SourcePath into storage under
// checklist-files/<projectId>/<itemId>_<unixMillis>_<fileName>
func (s *AttachmentService) Attach(ctx context.Context, projectID string, req *domain.AttachFileRequest) (*domain.AttachedFile, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(req.ItemID) == "" {
		return nil, fmt.Errorf("%w: project and item are required", ErrInvalidInput)
	}

	src, err := os.Open(req.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: source file %s does not exist", ErrInvalidInput, req.SourcePath)
		}
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, req.SourcePath)
	}
	if s.maxUploadSize > 0 && info.Size() > s.maxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", ErrInvalidInput, s.maxUploadSize)
	}

	fileName := filepath.Base(req.SourcePath)
	storedName := sanitizeSegment(req.ItemID) + "_" + strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + fileName
	key := path.Join(AttachmentDir, sanitizeSegment(projectID), storedName)

	location, size, err := s.storage.Upload(ctx, key, src)
	if err != nil {
		return nil, err
	}

	s.logger.Info("attachment stored",
		zap.String("projectID", projectID),
		zap.String("itemID", req.ItemID),
		zap.String("location", location),
		zap.Int64("size", size))

	return &domain.AttachedFile{
		FileName:   fileName,
		FilePath:   location,
		StoredName: storedName,
	}, nil
}

// Open hands a stored attachment to the operating system. It reports false
// when the file no longer exists.
func (s *AttachmentService) Open(ctx context.Context, filePath string) (bool, error) {
	local, err := s.storage.LocalPath(ctx, filePath)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.opener.OpenFile(local); err != nil {
		return false, err
	}
	return true, nil
}

// ExportZip writes the given attachments into a ZIP at destPath. Files that
// no longer exist are left out.
func (s *AttachmentService) ExportZip(ctx context.Context, req *domain.ExportZipRequest) (*archive.Result, error) {
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: no files to export", ErrInvalidInput)
	}
	dest := req.DestPath
	if !strings.EqualFold(filepath.Ext(dest), ".zip") {
		dest += ".zip"
	}

	result, err := archive.WriteZip(ctx, dest, req.Files, func(ctx context.Context, f domain.AttachedFile) (io.ReadCloser, error) {
		rc, err := s.storage.Download(ctx, f.FilePath)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, archive.ErrMissing
		}
		return rc, err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attachments exported",
		zap.String("path", result.Path),
		zap.Int("added", result.Added),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int64("size", result.Size))
	return result, nil
}

func sanitizeSegment(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
}

// Download streams a stored attachment, returning the original file name
func (s *AttachmentService) Download(ctx context.Context, filePath string) (io.ReadCloser, string, error) {
	rc, err := s.storage.Download(ctx, filePath)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return rc, originalName(path.Base(filepath.ToSlash(filePath))), nil
}

// originalName strips the <itemId>_<unixMillis>_ prefix added by Attach
func originalName(stored string) string {
	parts := strings.SplitN(stored, "_", 3)
	if len(parts) == 3 {
		if _, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			return parts[2]
		}
	}
	return stored
}
