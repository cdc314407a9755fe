package shell

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
)

// NewUIHandler serves the web UI. A packaged build serves the bundle from
// disk with index.html as the fallback for client-side routes; a development
// build proxies the dev server.
func NewUIHandler(app *config.AppConfig, cfg *config.ShellConfig, logger *zap.Logger) (http.Handler, error) {
	if !app.Packaged {
		target, err := url.Parse(cfg.DevServerURL)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("invalid dev server url %q", cfg.DevServerURL)
		}
		logger.Info("Proxying UI to dev server", zap.String("url", target.String()))
		return httputil.NewSingleHostReverseProxy(target), nil
	}

	index := filepath.Join(cfg.BundleDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return nil, fmt.Errorf("ui bundle not found in %s: %w", cfg.BundleDir, err)
	}
	logger.Info("Serving UI bundle", zap.String("dir", cfg.BundleDir))
	return &bundleHandler{dir: cfg.BundleDir, index: index, files: http.FileServer(http.Dir(cfg.BundleDir))}, nil
}

type bundleHandler struct {
	dir   string
	index string
	files http.Handler
}

func (h *bundleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	full := filepath.Join(h.dir, filepath.FromSlash(strings.TrimPrefix(name, "/")))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}
	http.ServeFile(w, r, h.index)
}
