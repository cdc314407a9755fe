// Package updater checks a release feed for newer versions of the tracker,
// downloads the installer and hands it to the operating system on restart.
//
// The feed is an electron-builder style latest.yml:
//
//	version: 1.4.0
//	path: tracker-setup-1.4.0.exe
//	sha512: <base64>
//	releaseDate: '2025-01-10T08:00:00.000Z'
package updater

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// EventType names an update lifecycle event
type EventType string

const (
	EventChecking     EventType = "checking"
	EventAvailable    EventType = "available"
	EventNotAvailable EventType = "not-available"
	EventError        EventType = "error"
	EventProgress     EventType = "progress"
	EventDownloaded   EventType = "downloaded"
)

var (
	// ErrDisabled is returned when the update channel is turned off
	ErrDisabled = errors.New("updates are disabled")

	// ErrNothingDownloaded is returned by RestartAndInstall before a download completed
	ErrNothingDownloaded = errors.New("no update has been downloaded")

	// ErrNoUpdate is returned by Download when no newer release is known
	ErrNoUpdate = errors.New("no update available to download")

	// ErrChecksumMismatch is returned when the downloaded file does not match the feed
	ErrChecksumMismatch = errors.New("downloaded update failed checksum verification")
)

// ReleaseFile is one artifact listed in the feed
type ReleaseFile struct {
	URL    string `yaml:"url" json:"url"`
	SHA512 string `yaml:"sha512" json:"sha512"`
	Size   int64  `yaml:"size" json:"size"`
}

// ReleaseInfo describes the latest published release
type ReleaseInfo struct {
	Version      string        `yaml:"version" json:"version"`
	Files        []ReleaseFile `yaml:"files" json:"files,omitempty"`
	Path         string        `yaml:"path" json:"path"`
	SHA512       string        `yaml:"sha512" json:"sha512"`
	ReleaseDate  string        `yaml:"releaseDate" json:"releaseDate"`
	ReleaseNotes string        `yaml:"releaseNotes" json:"releaseNotes,omitempty"`
}

// artifact returns the file to download, preferring the top-level path
func (r *ReleaseInfo) artifact() (ReleaseFile, bool) {
	if r.Path != "" {
		f := ReleaseFile{URL: r.Path, SHA512: r.SHA512}
		for _, file := range r.Files {
			if file.URL == r.Path {
				f.Size = file.Size
				if f.SHA512 == "" {
					f.SHA512 = file.SHA512
				}
			}
		}
		return f, true
	}
	if len(r.Files) > 0 {
		return r.Files[0], true
	}
	return ReleaseFile{}, false
}

// Event is published to subscribers as the update progresses
type Event struct {
	Type    EventType    `json:"type"`
	Info    *ReleaseInfo `json:"info,omitempty"`
	Percent float64      `json:"percent,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Status is a snapshot of the updater state
type Status struct {
	CurrentVersion string       `json:"currentVersion"`
	State          EventType    `json:"state,omitempty"`
	Available      *ReleaseInfo `json:"available,omitempty"`
	Percent        float64      `json:"percent"`
	DownloadedPath string       `json:"downloadedPath,omitempty"`
	LastChecked    *time.Time   `json:"lastChecked,omitempty"`
}

// Installer launches a downloaded installer
type Installer func(path string) error

// Updater talks to the release feed and tracks download state
type Updater struct {
	enabled      bool
	feedURL      string
	autoDownload bool
	downloadDir  string
	current      string
	client       *http.Client
	install      Installer
	quit         func()
	logger       *zap.Logger

	mu     sync.Mutex
	status Status
	subs   map[int]chan Event
	nextID int
	busy   bool
}

// New creates an Updater for the running version
func New(cfg *config.UpdatesConfig, currentVersion string, logger *zap.Logger) *Updater {
	return &Updater{
		enabled:      cfg.Enabled && cfg.FeedURL != "",
		feedURL:      cfg.FeedURL,
		autoDownload: cfg.AutoDownload,
		downloadDir:  cfg.DownloadDir,
		current:      currentVersion,
		client:       &http.Client{Timeout: 10 * time.Minute},
		install:      startInstaller,
		quit:         func() {},
		logger:       logger.With(zap.String("component", "updater")),
		status:       Status{CurrentVersion: currentVersion},
		subs:         make(map[int]chan Event),
	}
}

// WithInstaller replaces how the installer is launched
func (u *Updater) WithInstaller(install Installer) *Updater {
	u.install = install
	return u
}

// OnQuit registers the function that shuts the application down after the
// installer has been started
func (u *Updater) OnQuit(quit func()) {
	u.quit = quit
}

// Enabled reports whether a feed is configured
func (u *Updater) Enabled() bool {
	return u.enabled
}

// Subscribe returns a channel of update events and a function that
// unsubscribes. Slow subscribers miss events rather than block the updater:
// progress events are dropped when the buffer is full, any other event
// evicts the oldest queued one.
func (u *Updater) Subscribe() (<-chan Event, func()) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := u.nextID
	u.nextID++
	ch := make(chan Event, 16)
	u.subs[id] = ch

	return ch, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if c, ok := u.subs[id]; ok {
			delete(u.subs, id)
			close(c)
		}
	}
}

// Status returns the current updater state
func (u *Updater) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

// Check fetches the feed and reports whether a newer version exists. With
// auto download on, an available update is downloaded before Check returns.
func (u *Updater) Check(ctx context.Context) (*ReleaseInfo, error) {
	if !u.enabled {
		return nil, ErrDisabled
	}
	u.mu.Lock()
	if u.busy {
		u.mu.Unlock()
		return u.Status().Available, nil
	}
	u.busy = true
	u.mu.Unlock()
	defer func() {
		u.mu.Lock()
		u.busy = false
		u.mu.Unlock()
	}()

	u.publish(Event{Type: EventChecking})

	info, err := u.fetchFeed(ctx)
	if err != nil {
		return nil, u.fail(err)
	}

	now := time.Now()
	newer, err := IsNewer(info.Version, u.current)
	if err != nil {
		return nil, u.fail(err)
	}
	if !newer {
		u.mu.Lock()
		u.status.LastChecked = &now
		u.mu.Unlock()
		u.logger.Info("no update available", zap.String("latest", info.Version))
		u.publish(Event{Type: EventNotAvailable, Info: info})
		return nil, nil
	}

	u.mu.Lock()
	u.status.Available = info
	u.status.LastChecked = &now
	u.mu.Unlock()
	u.logger.Info("update available",
		zap.String("current", u.current),
		zap.String("latest", info.Version))
	u.publish(Event{Type: EventAvailable, Info: info})

	if u.autoDownload {
		if _, err := u.download(ctx, info); err != nil {
			return info, err
		}
	}
	return info, nil
}

// Download fetches the installer of the available release
func (u *Updater) Download(ctx context.Context) (string, error) {
	if !u.enabled {
		return "", ErrDisabled
	}
	info := u.Status().Available
	if info == nil {
		return "", ErrNoUpdate
	}
	return u.download(ctx, info)
}

// RestartAndInstall launches the downloaded installer and asks the
// application to quit
func (u *Updater) RestartAndInstall() error {
	path := u.Status().DownloadedPath
	if path == "" {
		return ErrNothingDownloaded
	}
	if err := u.install(path); err != nil {
		return fmt.Errorf("failed to start installer: %w", err)
	}
	u.logger.Info("installer started, quitting", zap.String("path", path))
	u.quit()
	return nil
}

func (u *Updater) fetchFeed(ctx context.Context) (*ReleaseInfo, error) {
	feed := u.feedLocation()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update feed returned %s", resp.Status)
	}

	var info ReleaseInfo
	if err := yaml.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode update feed: %w", err)
	}
	if info.Version == "" {
		return nil, fmt.Errorf("update feed has no version")
	}
	return &info, nil
}

// feedLocation accepts either the feed file itself or the directory holding it
func (u *Updater) feedLocation() string {
	lower := strings.ToLower(u.feedURL)
	if strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml") {
		return u.feedURL
	}
	return strings.TrimRight(u.feedURL, "/") + "/latest.yml"
}

// resolve makes an artifact url absolute against the feed
func (u *Updater) resolve(ref string) (string, error) {
	base, err := url.Parse(u.feedLocation())
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

func (u *Updater) fail(err error) error {
	u.logger.Warn("update check failed", zap.Error(err))
	u.publish(Event{Type: EventError, Error: err.Error()})
	return err
}

func (u *Updater) publish(ev Event) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.status.State = ev.Type
	if ev.Type == EventProgress {
		u.status.Percent = ev.Percent
	}
	for _, ch := range u.subs {
		deliver(ch, ev)
	}
}

// deliver queues ev without blocking. Callers hold u.mu, so no other
// goroutine sends on ch meanwhile.
func deliver(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		if ev.Type == EventProgress {
			return
		}
		select {
		case <-ch:
		default:
		}
	}
}

// IsNewer reports whether latest is a higher semantic version than current.
// A leading "v" is optional on both.
func IsNewer(latest, current string) (bool, error) {
	l, c := canonical(latest), canonical(current)
	if !semver.IsValid(l) {
		return false, fmt.Errorf("invalid release version %q", latest)
	}
	if !semver.IsValid(c) {
		return false, fmt.Errorf("invalid running version %q", current)
	}
	return semver.Compare(l, c) > 0, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
