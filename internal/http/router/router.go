package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/config"
	"github.com/jefanko/app-updates/internal/database"
	"github.com/jefanko/app-updates/internal/http/handler"
	"github.com/jefanko/app-updates/internal/http/middleware"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/jefanko/app-updates/docs" // Import generated swagger docs
)

const healthTimeout = 3 * time.Second

// Handlers bundles the API handlers mounted under /api/v1
type Handlers struct {
	Auth         *handler.AuthHandler
	Client       *handler.ClientHandler
	Project      *handler.ProjectHandler
	Milestone    *handler.MilestoneHandler
	Comment      *handler.CommentHandler
	Notification *handler.NotificationHandler
	Checklist    *handler.ChecklistHandler
	File         *handler.FileHandler
	Local        *handler.LocalHandler
	Year         *handler.YearHandler
	Accdb        *handler.AccdbHandler
	Report       *handler.ReportHandler
	Update       *handler.UpdateHandler
	Sync         *handler.SyncHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	handlers       Handlers
	ui             http.Handler
}

// NewRouter wires the API. ui serves everything outside /api and may be nil.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	handlers Handlers,
	ui http.Handler,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		metrics:        m,
		gatherer:       gatherer,
		handlers:       handlers,
		ui:             ui,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics(rt.metrics))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness: the remote store must answer
	r.Get("/health/ready", rt.ready)

	if rt.cfg.Metrics.Enabled {
		r.Handle(rt.cfg.Metrics.Path, promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		rt.mountAPI(r)
	})

	if rt.ui != nil {
		r.NotFound(rt.ui.ServeHTTP)
	}
	return r
}

func (rt *Router) mountAPI(r chi.Router) {
	h := rt.handlers
	requireUser := rt.authMiddleware.RequireUser

	r.Get("/auth/me", h.Auth.Me)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.Client.List)
		r.Get("/{id}", h.Client.GetByID)
		r.With(requireUser).Post("/", h.Client.Create)
		r.With(requireUser).Put("/{id}", h.Client.Rename)
		r.With(requireUser).Delete("/{id}", h.Client.Delete)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.Project.List)
		r.Get("/{id}", h.Project.GetByID)
		r.Get("/{id}/comments", h.Comment.List)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Project.Create)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
			r.Post("/{id}/comments", h.Comment.Create)
			r.Post("/{id}/attachments", h.File.Attach)

			r.Route("/{id}/milestones", func(r chi.Router) {
				r.Post("/", h.Milestone.Add)
				r.Put("/{milestoneId}", h.Milestone.Update)
				r.Delete("/{milestoneId}", h.Milestone.Delete)
				r.Post("/{milestoneId}/toggle", h.Milestone.Toggle)
				r.Post("/{milestoneId}/subs", h.Milestone.AddSub)
				r.Put("/{milestoneId}/subs/{subId}", h.Milestone.RenameSub)
				r.Delete("/{milestoneId}/subs/{subId}", h.Milestone.DeleteSub)
				r.Post("/{milestoneId}/subs/{subId}/toggle", h.Milestone.ToggleSub)
			})
		})
	})

	r.With(requireUser).Delete("/comments/{commentId}", h.Comment.Delete)

	r.Route("/notifications", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", h.Notification.List)
		r.Get("/count", h.Notification.UnreadCount)
		r.Put("/read-all", h.Notification.MarkAllAsRead)
		r.Put("/{id}/read", h.Notification.MarkAsRead)
	})

	r.Route("/checklists", func(r chi.Router) {
		r.Get("/", h.Checklist.List)
		r.Get("/{id}", h.Checklist.GetByID)
		r.With(requireUser).Post("/", h.Checklist.Create)
		r.With(requireUser).Put("/{id}", h.Checklist.Update)
		r.With(requireUser).Delete("/{id}", h.Checklist.Delete)
	})

	r.Route("/files", func(r chi.Router) {
		r.Get("/download", h.File.Download)
		r.Post("/open", h.File.Open)
		r.Post("/zip", h.File.ExportZip)
	})

	r.Route("/local", func(r chi.Router) {
		r.Get("/path", h.Local.GetPath)
		r.Put("/path", h.Local.SetPath)
		r.Post("/refresh", h.Local.Refresh)
		r.Get("/document", h.Local.GetDocument)
		r.Put("/document", h.Local.SaveDocument)
		r.Get("/collections", h.Local.Collections)
		r.Get("/collections/{collection}", h.Local.List)
		r.Post("/collections/{collection}", h.Local.Add)
		r.Get("/collections/{collection}/{id}", h.Local.Get)
		r.Put("/collections/{collection}/{id}", h.Local.Update)
		r.Delete("/collections/{collection}/{id}", h.Local.Delete)
	})

	r.Route("/years", func(r chi.Router) {
		r.Get("/", h.Year.List)
		r.Post("/{year}/switch", h.Year.Switch)
		r.With(requireUser).Post("/", h.Year.Add)
	})

	r.Post("/import/accdb", h.Accdb.Read)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.Report.Dashboard)
		r.Get("/weekly", h.Report.Weekly)
		r.Get("/weekly/export", h.Report.ExportWeekly)
	})

	r.Route("/updates", func(r chi.Router) {
		r.Get("/", h.Update.Status)
		r.Get("/events", h.Update.Events)
		r.Post("/check", h.Update.Check)
		r.Post("/download", h.Update.Download)
		r.Post("/install", h.Update.Install)
	})

	r.Get("/sync", h.Sync.Status)
	r.Post("/sync/refresh", h.Sync.Refresh)
}

func (rt *Router) ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]interface{}{}
	status := http.StatusOK

	if err := database.HealthCheck(r.Context(), rt.db, healthTimeout); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}
