// Package archive exports checklist attachments as a ZIP file.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// ErrMissing is returned by an OpenFunc when the attachment no longer exists.
// Missing attachments are skipped rather than failing the export.
var ErrMissing = errors.New("attachment missing")

// OpenFunc opens the contents of one attachment
type OpenFunc func(ctx context.Context, file domain.AttachedFile) (io.ReadCloser, error)

// Result describes a written archive
type Result struct {
	Path    string   `json:"path"`
	Size    int64    `json:"size"`
	Added   int      `json:"added"`
	Skipped []string `json:"skipped"`
}

// WriteZip writes files into a new archive at dest using maximum
// compression. Entries are named after the attachment's original file name;
// duplicate names get a numeric suffix.
func WriteZip(ctx context.Context, dest string, files []domain.AttachedFile, open OpenFunc) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	result := &Result{Path: dest, Skipped: []string{}}
	if err := writeEntries(ctx, out, files, open, result); err != nil {
		out.Close()
		os.Remove(dest)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, err
	}
	result.Size = info.Size()
	return result, nil
}

func writeEntries(ctx context.Context, out io.Writer, files []domain.AttachedFile, open OpenFunc, result *Result) error {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	names := make(map[string]int)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}

		rc, err := open(ctx, file)
		if errors.Is(err, ErrMissing) {
			result.Skipped = append(result.Skipped, file.FileName)
			continue
		}
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to open %s: %w", file.FileName, err)
		}

		header := &zip.FileHeader{
			Name:     entryName(file, names),
			Method:   zip.Deflate,
			Modified: time.Now(),
		}
		w, err := zw.CreateHeader(header)
		if err == nil {
			_, err = io.Copy(w, rc)
		}
		rc.Close()
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s: %w", file.FileName, err)
		}
		result.Added++
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func entryName(file domain.AttachedFile, seen map[string]int) string {
	name := filepath.Base(file.FileName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = filepath.Base(file.StoredName)
	}

	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + " (" + strconv.Itoa(n) + ")" + ext
}
