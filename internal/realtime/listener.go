package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// pingInterval keeps idle LISTEN connections from being dropped silently
const pingInterval = 90 * time.Second

// ListenerConfig configures a Listener
type ListenerConfig struct {
	ConnString           string
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
}

// Listener receives change notifications over LISTEN/NOTIFY
type Listener struct {
	cfg        ListenerConfig
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewListener creates a listener feeding dispatcher
func NewListener(cfg ListenerConfig, dispatcher *Dispatcher, logger *zap.Logger) *Listener {
	if cfg.MinReconnectInterval <= 0 {
		cfg.MinReconnectInterval = time.Second
	}
	if cfg.MaxReconnectInterval < cfg.MinReconnectInterval {
		cfg.MaxReconnectInterval = time.Minute
	}
	return &Listener{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("channel", cfg.Channel)),
	}
}

// notifier is the part of pq.Listener the receive loop uses
type notifier interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Run listens until ctx is cancelled. The mirror is resynced once LISTEN is
// in place and again after each reconnect, so changes committed while no
// session was listening are recovered.
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.cfg.ConnString, l.cfg.MinReconnectInterval, l.cfg.MaxReconnectInterval, l.reportEvent)
	return l.run(ctx, listener)
}

func (l *Listener) run(ctx context.Context, listener notifier) error {
	defer listener.Close()

	if err := listener.Listen(l.cfg.Channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.cfg.Channel, err)
	}
	l.logger.Info("Listening for remote changes")
	if err := l.dispatcher.Resync(ctx); err != nil {
		l.logger.Warn("initial change feed resync failed", zap.Error(err))
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil

		case n := <-notifications:
			if n == nil {
				l.logger.Info("Change feed reconnected, resyncing")
				_ = l.dispatcher.Resync(ctx)
				continue
			}
			l.handle(ctx, n.Extra)

		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					l.logger.Warn("change feed ping failed", zap.Error(err))
				}
			}()
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	ev, err := DecodeEvent(payload)
	if err != nil {
		l.logger.Warn("dropping malformed change event", zap.Error(err))
		return
	}
	if err := l.dispatcher.Dispatch(ctx, ev); err != nil {
		l.logger.Warn("failed to apply change event",
			zap.String("table", ev.Table),
			zap.String("type", string(ev.Type)),
			zap.String("id", ev.ID),
			zap.Error(err))
	}
}

func (l *Listener) reportEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("change feed connection attempt failed", zap.Error(err))
	case pq.ListenerEventDisconnected:
		l.logger.Warn("change feed disconnected", zap.Error(err))
	case pq.ListenerEventReconnected:
		l.logger.Info("change feed connection restored")
	}
}
