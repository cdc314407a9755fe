package updater

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jefanko/app-updates/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var installerBytes = []byte("MZ installer payload")

func checksum(data []byte) string {
	sum := sha512.Sum512(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func newFeedServer(t *testing.T, version, sha string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest.yml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "version: %s\npath: tracker-setup-%s.exe\nsha512: %s\nreleaseDate: '2025-01-10T08:00:00.000Z'\n", version, version, sha)
	})
	mux.HandleFunc("/releases/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(installerBytes)))
		w.Write(installerBytes)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func drain(ch <-chan Event) []EventType {
	var types []EventType
	for {
		select {
		case ev := <-ch:
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
		wantErr         bool
	}{
		{"1.4.0", "1.3.9", true, false},
		{"v1.4.0", "1.4.0", false, false},
		{"1.10.0", "1.9.3", true, false},
		{"1.4.0-beta.1", "1.4.0", false, false},
		{"latest", "1.0.0", false, true},
		{"1.0.0", "dev", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.latest+"_vs_"+tt.current, func(t *testing.T) {
			got, err := IsNewer(tt.latest, tt.current)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdater_CheckNotAvailable(t *testing.T) {
	srv := newFeedServer(t, "1.2.0", "")
	u := New(&config.UpdatesConfig{Enabled: true, FeedURL: srv.URL + "/releases"}, "1.2.0", zap.NewNop())
	events, unsubscribe := u.Subscribe()
	defer unsubscribe()

	info, err := u.Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Equal(t, []EventType{EventChecking, EventNotAvailable}, drain(events))
	assert.Equal(t, EventNotAvailable, u.Status().State)
	assert.NotNil(t, u.Status().LastChecked)
}

func TestUpdater_CheckAndAutoDownload(t *testing.T) {
	srv := newFeedServer(t, "1.3.0", checksum(installerBytes))
	dir := t.TempDir()
	u := New(&config.UpdatesConfig{
		Enabled:      true,
		FeedURL:      srv.URL + "/releases/latest.yml",
		AutoDownload: true,
		DownloadDir:  dir,
	}, "v1.2.0", zap.NewNop())
	events, unsubscribe := u.Subscribe()
	defer unsubscribe()

	info, err := u.Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "1.3.0", info.Version)

	status := u.Status()
	require.NotEmpty(t, status.DownloadedPath)
	data, err := os.ReadFile(status.DownloadedPath)
	require.NoError(t, err)
	assert.Equal(t, installerBytes, data)
	assert.Equal(t, 100.0, status.Percent)

	types := drain(events)
	assert.Equal(t, EventChecking, types[0])
	assert.Equal(t, EventAvailable, types[1])
	assert.Contains(t, types, EventProgress)
	assert.Equal(t, EventDownloaded, types[len(types)-1])

	var installed string
	quit := false
	u.WithInstaller(func(path string) error {
		installed = path
		return nil
	}).OnQuit(func() { quit = true })

	require.NoError(t, u.RestartAndInstall())
	assert.Equal(t, status.DownloadedPath, installed)
	assert.True(t, quit)
}

func TestUpdater_SlowSubscriberKeepsTerminalEvents(t *testing.T) {
	u := New(&config.UpdatesConfig{Enabled: true}, "1.2.0", zap.NewNop())
	events, unsubscribe := u.Subscribe()
	defer unsubscribe()

	for i := 1; i <= 40; i++ {
		u.publish(Event{Type: EventProgress, Percent: float64(i)})
	}
	u.publish(Event{Type: EventDownloaded})
	u.publish(Event{Type: EventProgress, Percent: 100})

	types := drain(events)
	assert.Len(t, types, 16)
	assert.Equal(t, EventDownloaded, types[len(types)-1])
	assert.Equal(t, EventDownloaded, u.Status().State)
}

func TestUpdater_ChecksumMismatch(t *testing.T) {
	srv := newFeedServer(t, "2.0.0", checksum([]byte("something else")))
	u := New(&config.UpdatesConfig{Enabled: true, FeedURL: srv.URL + "/releases", DownloadDir: t.TempDir()}, "1.0.0", zap.NewNop())

	info, err := u.Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info)

	_, err = u.Download(context.Background())
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Equal(t, EventError, u.Status().State)
	assert.ErrorIs(t, u.RestartAndInstall(), ErrNothingDownloaded)
}

func TestUpdater_FeedErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	u := New(&config.UpdatesConfig{Enabled: true, FeedURL: srv.URL}, "1.0.0", zap.NewNop())
	events, unsubscribe := u.Subscribe()
	defer unsubscribe()

	_, err := u.Check(context.Background())
	assert.ErrorContains(t, err, "404")
	assert.Equal(t, []EventType{EventChecking, EventError}, drain(events))
}

func TestUpdater_Disabled(t *testing.T) {
	u := New(&config.UpdatesConfig{Enabled: true}, "1.0.0", zap.NewNop())
	assert.False(t, u.Enabled())
	_, err := u.Check(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
}
