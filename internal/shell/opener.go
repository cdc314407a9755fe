// Package shell is the desktop side of the tracker: it hands files and URLs
// to the operating system and serves the web UI.
package shell

import (
	"fmt"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// Opener hands files and URLs to the operating system's default handler
type Opener interface {
	OpenFile(path string) error
	OpenURL(url string) error
}

// SystemOpener opens things with the desktop's registered applications
type SystemOpener struct {
	logger *zap.Logger
}

// NewSystemOpener creates an opener backed by the desktop environment
func NewSystemOpener(logger *zap.Logger) *SystemOpener {
	return &SystemOpener{logger: logger}
}

func (o *SystemOpener) OpenFile(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	o.logger.Debug("opened file with default application", zap.String("path", path))
	return nil
}

func (o *SystemOpener) OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
