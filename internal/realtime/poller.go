package realtime

import (
	"context"
	"sync"

	"github.com/jefanko/app-updates/internal/repository"
	"go.uber.org/zap"
)

// Versioned reports a table's current version
type Versioned interface {
	Version(ctx context.Context) (repository.Version, error)
}

type pollTarget struct {
	source Versioned
	last   repository.Version
	seen   bool
}

// VersionPoller is the change feed for deployments without LISTEN/NOTIFY.
// Each poll compares every table's version with the previous one and
// resyncs only the tables that changed.
type VersionPoller struct {
	mu         sync.Mutex
	targets    map[string]*pollTarget
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewVersionPoller creates a poller that resyncs through dispatcher
func NewVersionPoller(dispatcher *Dispatcher, logger *zap.Logger) *VersionPoller {
	return &VersionPoller{
		targets:    make(map[string]*pollTarget),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Track adds a table to the poll set
func (p *VersionPoller) Track(table string, source Versioned) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.targets[table] = &pollTarget{source: source}
}

// Poll checks every tracked table once and returns the tables it resynced.
// The first observation of a table only records its version.
func (p *VersionPoller) Poll(ctx context.Context) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var changed []string
	for _, table := range p.dispatcher.Tables() {
		target, ok := p.targets[table]
		if !ok {
			continue
		}
		version, err := target.source.Version(ctx)
		if err != nil {
			p.logger.Warn("failed to read table version", zap.String("table", table), zap.Error(err))
			continue
		}
		if target.seen && version == target.last {
			continue
		}
		first := !target.seen
		if !first {
			if err := p.dispatcher.ResyncTable(ctx, table); err != nil {
				p.logger.Warn("failed to resync changed table", zap.String("table", table), zap.Error(err))
				continue
			}
			changed = append(changed, table)
		}
		target.last = version
		target.seen = true
	}
	return changed
}
