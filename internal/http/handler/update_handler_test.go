package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/config"
	"github.com/jefanko/app-updates/internal/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func updateRoutes(u *updater.Updater) http.Handler {
	uh := NewUpdateHandler(u, zap.NewNop())
	return withUser(nil, func(r chi.Router) {
		r.Get("/updates", uh.Status)
		r.Post("/updates/check", uh.Check)
		r.Post("/updates/download", uh.Download)
		r.Post("/updates/install", uh.Install)
	})
}

func TestUpdateHandler_Disabled(t *testing.T) {
	h := updateRoutes(updater.New(&config.UpdatesConfig{Enabled: false}, "1.2.0", zap.NewNop()))

	rec := doRequest(t, h, http.MethodGet, "/updates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.0", decode[updater.Status](t, rec).CurrentVersion)

	rec = doRequest(t, h, http.MethodPost, "/updates/check", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = doRequest(t, h, http.MethodPost, "/updates/download", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = doRequest(t, h, http.MethodPost, "/updates/install", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateHandler_CheckNotAvailable(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("version: 1.2.0\npath: tracker-setup-1.2.0.exe\nsha512: abc\n"))
	}))
	defer feed.Close()

	u := updater.New(&config.UpdatesConfig{Enabled: true, FeedURL: feed.URL, DownloadDir: t.TempDir()}, "1.2.0", zap.NewNop())
	h := updateRoutes(u)

	rec := doRequest(t, h, http.MethodPost, "/updates/check", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[CheckResult](t, rec).Available)

	rec = doRequest(t, h, http.MethodPost, "/updates/download", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateHandler_FeedDown(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer feed.Close()

	u := updater.New(&config.UpdatesConfig{Enabled: true, FeedURL: feed.URL}, "1.2.0", zap.NewNop())
	rec := doRequest(t, updateRoutes(u), http.MethodPost, "/updates/check", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUpdateHandler_EventsOutliveWriteTimeout(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("version: 1.2.0\npath: tracker-setup-1.2.0.exe\nsha512: abc\n"))
	}))
	defer feed.Close()

	u := updater.New(&config.UpdatesConfig{Enabled: true, FeedURL: feed.URL, DownloadDir: t.TempDir()}, "1.2.0", zap.NewNop())
	uh := NewUpdateHandler(u, zap.NewNop())

	srv := httptest.NewUnstartedServer(http.HandlerFunc(uh.Events))
	srv.Config.WriteTimeout = 200 * time.Millisecond
	srv.Start()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	time.Sleep(400 * time.Millisecond)
	_, err = u.Check(context.Background())
	require.NoError(t, err)

	var got []string
	for len(got) < 2 {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed after %v", got)
			if strings.HasPrefix(line, "event: ") {
				got = append(got, strings.TrimPrefix(line, "event: "))
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for events, got %v", got)
		}
	}
	assert.Equal(t, []string{"checking", "not-available"}, got)
}
