package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/jefanko/app-updates/internal/mirror"
	"github.com/jefanko/app-updates/internal/optimistic"
	"github.com/jefanko/app-updates/internal/realtime"
	"github.com/jefanko/app-updates/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Source reads authoritative rows of one table
type Source[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
}

// Backend is the remote surface of one mirrored table
type Backend[T any] interface {
	optimistic.Remote[T]
	Source[T]
}

// NotificationBackend adds the recipient-scoped operations notifications need
type NotificationBackend interface {
	Backend[domain.Notification]
	ListForUser(ctx context.Context, email string) ([]domain.Notification, error)
	MarkAllAsRead(ctx context.Context, email string) error
}

// Backends groups the remote tables
type Backends struct {
	Clients       Backend[domain.Client]
	Projects      Backend[domain.Project]
	Comments      Backend[domain.Comment]
	Notifications NotificationBackend
	Checklists    Backend[domain.Checklist]
}

// NewBackends wires the gorm repositories as remote backends
func NewBackends(db *gorm.DB) Backends {
	return Backends{
		Clients:       repository.NewClientRepository(db),
		Projects:      repository.NewProjectRepository(db),
		Comments:      repository.NewCommentRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Checklists:    repository.NewChecklistRepository(db),
	}
}

// SyncConfig configures the mirror and its mutators
type SyncConfig struct {
	WriteTimeout time.Duration
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

// Sync owns the local mirror of the signed-in user together with one
// optimistic mutator per table and the change-feed sinks that reconcile them
type Sync struct {
	Store         *mirror.Store
	Clients       *optimistic.Mutator[domain.Client]
	Projects      *optimistic.Mutator[domain.Project]
	Comments      *optimistic.Mutator[domain.Comment]
	Notifications *optimistic.Mutator[domain.Notification]
	Checklists    *optimistic.Mutator[domain.Checklist]

	backends   Backends
	user       *auth.UserContext
	dispatcher *realtime.Dispatcher
	logger     *zap.Logger
}

// NewSync builds the mirror for user. Nothing is loaded until Load is called.
func NewSync(backends Backends, user *auth.UserContext, cfg SyncConfig) *Sync {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := mirror.NewStore()

	s := &Sync{
		Store:      store,
		backends:   backends,
		user:       user,
		dispatcher: realtime.NewDispatcher(cfg.Metrics, logger),
		logger:     logger,
	}

	s.Clients = optimistic.New(optimistic.Config[domain.Client]{
		Table: "clients", Collection: store.Clients, Remote: backends.Clients,
		MatchKey: clientMatchKey, WriteTimeout: cfg.WriteTimeout, Metrics: cfg.Metrics, Logger: logger,
	})
	s.Projects = optimistic.New(optimistic.Config[domain.Project]{
		Table: "projects", Collection: store.Projects, Remote: backends.Projects,
		MatchKey: projectMatchKey, WriteTimeout: cfg.WriteTimeout, Metrics: cfg.Metrics, Logger: logger,
	})
	s.Comments = optimistic.New(optimistic.Config[domain.Comment]{
		Table: "comments", Collection: store.Comments, Remote: backends.Comments,
		MatchKey: commentMatchKey, WriteTimeout: cfg.WriteTimeout, Metrics: cfg.Metrics, Logger: logger,
	})
	s.Notifications = optimistic.New(optimistic.Config[domain.Notification]{
		Table: "notifications", Collection: store.Notifications, Remote: backends.Notifications,
		WriteTimeout: cfg.WriteTimeout, Metrics: cfg.Metrics, Logger: logger,
	})
	s.Checklists = optimistic.New(optimistic.Config[domain.Checklist]{
		Table: "checklists", Collection: store.Checklists, Remote: backends.Checklists,
		MatchKey: checklistMatchKey, WriteTimeout: cfg.WriteTimeout, Metrics: cfg.Metrics, Logger: logger,
	})

	register(s.dispatcher, s.Clients, backends.Clients, nil, nil)
	register(s.dispatcher, s.Projects, backends.Projects, nil, nil)
	register(s.dispatcher, s.Comments, backends.Comments, nil, nil)
	register(s.dispatcher, s.Checklists, backends.Checklists, nil, nil)
	register(s.dispatcher, s.Notifications, backends.Notifications,
		func(ctx context.Context) ([]domain.Notification, error) {
			return backends.Notifications.ListForUser(ctx, s.userEmail())
		},
		func(n domain.Notification) bool {
			return strings.EqualFold(n.UserEmail, s.userEmail())
		},
	)
	return s
}

func register[T domain.Entity[T]](
	d *realtime.Dispatcher,
	m *optimistic.Mutator[T],
	source Source[T],
	load func(ctx context.Context) ([]T, error),
	accept func(T) bool,
) {
	if load == nil {
		load = source.List
	}
	d.Register(m.Table(), realtime.NewEntitySink(realtime.SinkConfig[T]{
		Applier: m,
		Fetch:   source.Get,
		Load:    load,
		Accept:  accept,
	}))
}

// User returns the user the mirror belongs to
func (s *Sync) User() *auth.UserContext {
	return s.user
}

// Backends returns the remote tables
func (s *Sync) Backends() Backends {
	return s.backends
}

// Dispatcher routes change-feed events into the mirror
func (s *Sync) Dispatcher() *realtime.Dispatcher {
	return s.dispatcher
}

// Load reads every table from the remote store. Tables that fail to load
// keep their current contents; the joined error reports which ones.
func (s *Sync) Load(ctx context.Context) error {
	return s.dispatcher.Resync(ctx)
}

// Refresh reloads one table, or every table when table is empty
func (s *Sync) Refresh(ctx context.Context, table string) error {
	if table == "" {
		return s.Load(ctx)
	}
	if !slices.Contains(s.dispatcher.Tables(), table) {
		return fmt.Errorf("%w: unknown table %q", ErrNotFound, table)
	}
	return s.dispatcher.ResyncTable(ctx, table)
}

// Pending returns the number of unreconciled temporary entries per table
func (s *Sync) Pending() map[string]int {
	return map[string]int{
		s.Clients.Table():       s.Clients.Pending(),
		s.Projects.Table():      s.Projects.Pending(),
		s.Comments.Table():      s.Comments.Pending(),
		s.Notifications.Table(): s.Notifications.Pending(),
		s.Checklists.Table():    s.Checklists.Pending(),
	}
}

// Wait blocks until every in-flight remote write has finished
func (s *Sync) Wait() {
	s.Clients.Wait()
	s.Projects.Wait()
	s.Comments.Wait()
	s.Notifications.Wait()
	s.Checklists.Wait()
}

func (s *Sync) userEmail() string {
	if s.user == nil {
		return ""
	}
	return s.user.Email
}

func clientMatchKey(c domain.Client) string {
	return string(c.Org) + "|" + c.Name
}

func projectMatchKey(p domain.Project) string {
	creator := ""
	if p.CreatedBy != nil {
		creator = p.CreatedBy.ID
	}
	return string(p.Org) + "|" + p.Name + "|" + creator
}

func commentMatchKey(c domain.Comment) string {
	parent := ""
	if c.ParentID != nil {
		parent = *c.ParentID
	}
	return c.ProjectID + "|" + c.UserEmail + "|" + c.Content + "|" + parent
}

func checklistMatchKey(c domain.Checklist) string {
	creator := ""
	if c.CreatedBy != nil {
		creator = c.CreatedBy.Email
	}
	return string(c.Org) + "|" + c.Name + "|" + creator
}
