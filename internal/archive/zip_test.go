package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFromMap(contents map[string]string) OpenFunc {
	return func(ctx context.Context, f domain.AttachedFile) (io.ReadCloser, error) {
		body, ok := contents[f.FilePath]
		if !ok {
			return nil, ErrMissing
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(data)
	}
	return out
}

func TestWriteZip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "export", "docs.zip")
	files := []domain.AttachedFile{
		{FileName: "drawing.pdf", FilePath: "/a/drawing.pdf"},
		{FileName: "gone.pdf", FilePath: "/a/gone.pdf"},
		{FileName: "drawing.pdf", FilePath: "/b/drawing.pdf"},
	}
	open := openFromMap(map[string]string{
		"/a/drawing.pdf": strings.Repeat("first ", 100),
		"/b/drawing.pdf": "second",
	})

	result, err := WriteZip(context.Background(), dest, files, open)
	require.NoError(t, err)

	assert.Equal(t, dest, result.Path)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, []string{"gone.pdf"}, result.Skipped)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), result.Size)

	entries := readZip(t, dest)
	assert.Len(t, entries, 2)
	assert.Equal(t, strings.Repeat("first ", 100), entries["drawing.pdf"])
	assert.Equal(t, "second", entries["drawing (1).pdf"])
}

func TestWriteZip_OpenErrorRemovesArchive(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "docs.zip")
	boom := errors.New("disk unreadable")
	open := func(ctx context.Context, f domain.AttachedFile) (io.ReadCloser, error) {
		return nil, boom
	}

	_, err := WriteZip(context.Background(), dest, []domain.AttachedFile{{FileName: "a.txt"}}, open)
	require.ErrorIs(t, err, boom)
	assert.NoFileExists(t, dest)
}

func TestWriteZip_AllMissing(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.zip")
	result, err := WriteZip(context.Background(), dest,
		[]domain.AttachedFile{{FileName: "a.txt", FilePath: "/nope"}}, openFromMap(nil))
	require.NoError(t, err)
	assert.Zero(t, result.Added)
	assert.Empty(t, readZip(t, dest))
}
