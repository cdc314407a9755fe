package shell

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jefanko/app-updates/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUIHandler_Bundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	h, err := NewUIHandler(&config.AppConfig{Packaged: true}, &config.ShellConfig{BundleDir: dir}, zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/assets/app.js", "console.log(1)"},
		{"/projects/123", "<html>app</html>"},
		{"/", "<html>app</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestUIHandler_MissingBundle(t *testing.T) {
	_, err := NewUIHandler(&config.AppConfig{Packaged: true}, &config.ShellConfig{BundleDir: t.TempDir()}, zap.NewNop())
	assert.Error(t, err)
}

func TestUIHandler_DevProxy(t *testing.T) {
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "dev:"+r.URL.Path)
	}))
	defer dev.Close()

	h, err := NewUIHandler(&config.AppConfig{}, &config.ShellConfig{DevServerURL: dev.URL}, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/src/main.jsx", nil))
	assert.Equal(t, "dev:/src/main.jsx", rec.Body.String())

	_, err = NewUIHandler(&config.AppConfig{}, &config.ShellConfig{DevServerURL: "::bad"}, zap.NewNop())
	assert.Error(t, err)
}
