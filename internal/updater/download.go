package updater

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// progressEvery limits progress events to whole-percent steps
const progressEvery = 1.0

func (u *Updater) download(ctx context.Context, info *ReleaseInfo) (string, error) {
	artifact, ok := info.artifact()
	if !ok {
		return "", u.fail(fmt.Errorf("release %s lists no installer", info.Version))
	}
	src, err := u.resolve(artifact.URL)
	if err != nil {
		return "", u.fail(fmt.Errorf("invalid installer url: %w", err))
	}

	dir := u.downloadDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "tracker-updates")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", u.fail(fmt.Errorf("failed to create download directory: %w", err))
	}
	dest := filepath.Join(dir, path.Base(artifact.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", u.fail(err)
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return "", u.fail(fmt.Errorf("failed to download update: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", u.fail(fmt.Errorf("update download returned %s", resp.Status))
	}

	total := resp.ContentLength
	if total <= 0 {
		total = artifact.Size
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", u.fail(fmt.Errorf("failed to create download file: %w", err))
	}

	hash := sha512.New()
	pw := &progressWriter{total: total, report: func(p float64) {
		u.publish(Event{Type: EventProgress, Percent: p, Info: info})
	}}
	_, err = io.Copy(io.MultiWriter(out, hash, pw), resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", u.fail(fmt.Errorf("failed to write update: %w", err))
	}

	if artifact.SHA512 != "" {
		sum := base64.StdEncoding.EncodeToString(hash.Sum(nil))
		if sum != artifact.SHA512 {
			os.Remove(tmp)
			return "", u.fail(ErrChecksumMismatch)
		}
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", u.fail(fmt.Errorf("failed to finalize update: %w", err))
	}

	u.mu.Lock()
	u.status.DownloadedPath = dest
	u.mu.Unlock()

	u.logger.Info("update downloaded",
		zap.String("version", info.Version),
		zap.String("path", dest))
	u.publish(Event{Type: EventProgress, Percent: 100, Info: info})
	u.publish(Event{Type: EventDownloaded, Info: info})
	return dest, nil
}

type progressWriter struct {
	total   int64
	written int64
	last    float64
	report  func(percent float64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.total > 0 {
		percent := float64(w.written) / float64(w.total) * 100
		if percent-w.last >= progressEvery && percent < 100 {
			w.last = percent
			w.report(percent)
		}
	}
	return len(p), nil
}

func startInstaller(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
