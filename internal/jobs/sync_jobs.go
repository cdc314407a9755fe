package jobs

import (
	"context"
	"errors"

	"github.com/jefanko/app-updates/internal/updater"
	"go.uber.org/zap"
)

// Job names
const (
	ChangePollJobName  = "change_poll"
	UpdateCheckJobName = "update_check"
	YearSaveJobName    = "year_save"
)

// Poller checks remote tables for changes and resyncs the ones that moved
type Poller interface {
	Poll(ctx context.Context) []string
}

// ChangePollJob drives the version poller when LISTEN/NOTIFY is unavailable
type ChangePollJob struct {
	poller Poller
	logger *zap.Logger
}

func NewChangePollJob(poller Poller, logger *zap.Logger) *ChangePollJob {
	return &ChangePollJob{poller: poller, logger: logger}
}

func (j *ChangePollJob) Name() string { return ChangePollJobName }

func (j *ChangePollJob) Run(ctx context.Context) error {
	if changed := j.poller.Poll(ctx); len(changed) > 0 {
		j.logger.Info("remote tables changed", zap.Strings("tables", changed))
	}
	return ctx.Err()
}

// UpdateChecker looks for a newer release
type UpdateChecker interface {
	Check(ctx context.Context) (*updater.ReleaseInfo, error)
}

// UpdateCheckJob periodically asks the release feed for a newer version
type UpdateCheckJob struct {
	checker UpdateChecker
	logger  *zap.Logger
}

func NewUpdateCheckJob(checker UpdateChecker, logger *zap.Logger) *UpdateCheckJob {
	return &UpdateCheckJob{checker: checker, logger: logger}
}

func (j *UpdateCheckJob) Name() string { return UpdateCheckJobName }

func (j *UpdateCheckJob) Run(ctx context.Context) error {
	info, err := j.checker.Check(ctx)
	if errors.Is(err, updater.ErrDisabled) {
		return nil
	}
	if err != nil {
		return err
	}
	if info != nil {
		j.logger.Info("newer release found", zap.String("version", info.Version))
	}
	return nil
}

// YearSaver persists the mirrored year partition
type YearSaver interface {
	SaveCurrent(ctx context.Context) error
}

// YearSaveJob writes the current year's clients and projects to the local
// store so an unclean exit loses little
type YearSaveJob struct {
	saver YearSaver
}

func NewYearSaveJob(saver YearSaver) *YearSaveJob {
	return &YearSaveJob{saver: saver}
}

func (j *YearSaveJob) Name() string { return YearSaveJobName }

func (j *YearSaveJob) Run(ctx context.Context) error {
	return j.saver.SaveCurrent(ctx)
}
