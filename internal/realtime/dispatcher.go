package realtime

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jefanko/app-updates/internal/metrics"
	"go.uber.org/zap"
)

// Dispatcher routes change events to the sink registered for their table
type Dispatcher struct {
	mu      sync.RWMutex
	sinks   map[string]Sink
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Dispatcher{
		sinks:   make(map[string]Sink),
		metrics: m,
		logger:  logger,
	}
}

// Register binds a sink to a table, replacing any previous binding
func (d *Dispatcher) Register(table string, sink Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks[table] = sink
}

// Tables returns the registered table names in order
func (d *Dispatcher) Tables() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tables := make([]string, 0, len(d.sinks))
	for table := range d.sinks {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// Dispatch applies ev through its table's sink. Events for unknown tables are
// ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	sink, ok := d.sink(ev.Table)
	if !ok {
		d.logger.Debug("change event for unmirrored table", zap.String("table", ev.Table))
		return nil
	}
	if err := sink.Apply(ctx, ev); err != nil {
		return err
	}
	d.metrics.ChangeEvents.WithLabelValues(ev.Table, string(ev.Type)).Inc()
	return nil
}

// ResyncTable reloads one table from the remote store
func (d *Dispatcher) ResyncTable(ctx context.Context, table string) error {
	sink, ok := d.sink(table)
	if !ok {
		return nil
	}
	return sink.Resync(ctx)
}

// Resync reloads every registered table. Failures are logged and joined;
// a failing table keeps its current contents.
func (d *Dispatcher) Resync(ctx context.Context) error {
	var errs []error
	for _, table := range d.Tables() {
		if err := d.ResyncTable(ctx, table); err != nil {
			d.logger.Error("failed to resync table", zap.String("table", table), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) sink(table string) (Sink, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sink, ok := d.sinks[table]
	return sink, ok
}
