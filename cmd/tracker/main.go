package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/jefanko/app-updates/docs"
	"github.com/jefanko/app-updates/internal/accdb"
	"github.com/jefanko/app-updates/internal/auth"
	"github.com/jefanko/app-updates/internal/config"
	"github.com/jefanko/app-updates/internal/database"
	"github.com/jefanko/app-updates/internal/http/handler"
	"github.com/jefanko/app-updates/internal/http/middleware"
	"github.com/jefanko/app-updates/internal/http/router"
	"github.com/jefanko/app-updates/internal/jobs"
	"github.com/jefanko/app-updates/internal/localstore"
	"github.com/jefanko/app-updates/internal/logger"
	"github.com/jefanko/app-updates/internal/metrics"
	"github.com/jefanko/app-updates/internal/realtime"
	"github.com/jefanko/app-updates/internal/repository"
	"github.com/jefanko/app-updates/internal/service"
	"github.com/jefanko/app-updates/internal/shell"
	"github.com/jefanko/app-updates/internal/storage"
	"github.com/jefanko/app-updates/internal/updater"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Tender Tracker Local API
// @version 1.0
// @description Local API behind the project and tender tracker UI. Reads come from the in-memory mirror; writes apply optimistically and are confirmed by the remote store.

// @contact.name INA AI
// @license.name Proprietary

// @host localhost:5273
// @BasePath /api/v1

// jobTimeout bounds a single scheduled run
const jobTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
		zap.Bool("packaged", basicCfg.App.Packaged),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	docs.SwaggerInfo.Version = basicCfg.App.Version

	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	log.Info("Remote store connected", zap.String("driver", cfg.Database.Driver))

	authMiddleware := auth.NewMiddleware(cfg, log)
	if authMiddleware.User() == nil {
		log.Warn("No user configured, the tracker is read-only")
	}

	sync := service.NewSync(service.NewBackends(db), authMiddleware.User(), service.SyncConfig{
		WriteTimeout: cfg.Remote.WriteTimeoutDuration(),
		Metrics:      m,
		Logger:       log,
	})
	if err := sync.Load(ctx); err != nil {
		// Tables that failed keep their empty state until the next resync
		log.Warn("Initial load incomplete", zap.Error(err))
	}

	// Local document store
	backend, err := localstore.NewBackend(&cfg.Local, log)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("Error closing local store", zap.Error(err))
		}
	}()
	documents := localstore.NewDocumentStore(backend, log)
	years := localstore.NewYearStore(backend, log)

	fileStorage, err := storage.NewStorage(&cfg.Storage, filepath.Join(xdg.CacheHome, config.AppDirName, "files"), log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	opener := shell.NewSystemOpener(log)
	updates := updater.New(&cfg.Updates, cfg.App.Version, log)

	// Services
	clientService := service.NewClientService(sync, log)
	projectService := service.NewProjectService(sync, log)
	commentService := service.NewCommentService(sync, log)
	notificationService := service.NewNotificationService(sync, log)
	checklistService := service.NewChecklistService(sync, log)
	attachmentService := service.NewAttachmentService(fileStorage, opener, cfg.Storage.MaxUploadSizeMB*1024*1024, log)
	localService := service.NewLocalService(documents, log)
	yearService := service.NewYearService(sync, years, log)
	reportService := service.NewReportService(sync, log)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(log),
		Client:       handler.NewClientHandler(clientService, log),
		Project:      handler.NewProjectHandler(projectService, log),
		Milestone:    handler.NewMilestoneHandler(projectService, log),
		Comment:      handler.NewCommentHandler(commentService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
		Checklist:    handler.NewChecklistHandler(checklistService, log),
		File:         handler.NewFileHandler(attachmentService, log),
		Local:        handler.NewLocalHandler(localService, log),
		Year:         handler.NewYearHandler(yearService, log),
		Accdb:        handler.NewAccdbHandler(accdb.NewReader(&cfg.Accdb, log), log),
		Report:       handler.NewReportHandler(reportService, log),
		Update:       handler.NewUpdateHandler(updates, log),
		Sync:         handler.NewSyncHandler(sync, log),
	}

	ui, err := shell.NewUIHandler(&cfg.App, &cfg.Shell, log)
	if err != nil {
		log.Warn("UI unavailable, serving the API only", zap.Error(err))
		ui = nil
	}

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		m,
		registry,
		handlers,
		ui,
	)

	// Background work
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	scheduler := jobs.NewScheduler(jobTimeout, log)
	if err := startChangeFeed(runCtx, cfg, db, sync, scheduler, log); err != nil {
		return err
	}
	if updates.Enabled() {
		if err := scheduler.Add(cfg.Updates.Schedule, jobs.NewUpdateCheckJob(updates, log)); err != nil {
			return err
		}
	}
	if err := scheduler.Add("@every 5m", jobs.NewYearSaveJob(yearService)); err != nil {
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	if cfg.Shell.OpenBrowser && ui != nil {
		url := fmt.Sprintf("http://localhost:%d/", cfg.App.Port)
		if err := opener.OpenURL(url); err != nil {
			log.Warn("Failed to open the UI", zap.String("url", url), zap.Error(err))
		}
	}

	// The updater quits the app once the installer has started
	quit := make(chan struct{})
	updates.OnQuit(func() { close(quit) })

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case <-quit:
		log.Info("Quitting for update install")
	}

	stopRun()
	<-scheduler.Stop().Done()
	log.Info("Scheduler stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown gracefully", zap.Error(err))
	}

	// Let in-flight remote writes settle so their rollbacks land before the
	// year partition is saved
	sync.Wait()
	if err := yearService.SaveCurrent(shutdownCtx); err != nil {
		log.Warn("Failed to save the current year", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
	return nil
}

// startChangeFeed connects the mirror to remote changes. LISTEN/NOTIFY needs
// postgres; other drivers fall back to version polling.
func startChangeFeed(ctx context.Context, cfg *config.Config, db *gorm.DB, sync *service.Sync, scheduler *jobs.Scheduler, log *zap.Logger) error {
	mode := cfg.Realtime.Mode
	if mode == "listen" && cfg.Database.Driver == "sqlite" {
		log.Info("LISTEN/NOTIFY unavailable on sqlite, polling instead")
		mode = "poll"
	}

	switch mode {
	case "listen":
		minInterval, maxInterval := cfg.Realtime.ReconnectIntervals()
		listener := realtime.NewListener(realtime.ListenerConfig{
			ConnString:           cfg.Database.ConnectionString(),
			Channel:              cfg.Realtime.Channel,
			MinReconnectInterval: minInterval,
			MaxReconnectInterval: maxInterval,
		}, sync.Dispatcher(), log)
		go func() {
			if err := listener.Run(ctx); err != nil {
				log.Error("Change feed stopped", zap.Error(err))
			}
		}()
		return nil

	case "poll":
		poller := realtime.NewVersionPoller(sync.Dispatcher(), log)
		poller.Track("clients", repository.NewClientRepository(db))
		poller.Track("projects", repository.NewProjectRepository(db))
		poller.Track("comments", repository.NewCommentRepository(db))
		poller.Track("notifications", repository.NewNotificationRepository(db))
		poller.Track("checklists", repository.NewChecklistRepository(db))
		return scheduler.Add(cfg.Realtime.PollSchedule, jobs.NewChangePollJob(poller, log))

	case "off":
		log.Info("Change feed disabled")
		return nil

	default:
		return fmt.Errorf("unsupported realtime mode: %s", cfg.Realtime.Mode)
	}
}
