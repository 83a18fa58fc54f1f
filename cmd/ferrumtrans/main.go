package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/analytics"
	"github.com/ferrumtrans/ferrumtrans/internal/app"
	"github.com/ferrumtrans/ferrumtrans/internal/applications"
	"github.com/ferrumtrans/ferrumtrans/internal/audit"
	"github.com/ferrumtrans/ferrumtrans/internal/auth"
	"github.com/ferrumtrans/ferrumtrans/internal/contacts"
	"github.com/ferrumtrans/ferrumtrans/internal/mainpage"
	"github.com/ferrumtrans/ferrumtrans/internal/media"
	"github.com/ferrumtrans/ferrumtrans/internal/news"
	"github.com/ferrumtrans/ferrumtrans/internal/pages"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/cache"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/db"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/storage"
	"github.com/ferrumtrans/ferrumtrans/internal/settings"
	"github.com/ferrumtrans/ferrumtrans/internal/shared"
	"github.com/ferrumtrans/ferrumtrans/internal/users"
	"github.com/ferrumtrans/ferrumtrans/jobs"
	"github.com/ferrumtrans/ferrumtrans/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN, migrations.FS); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store, err := storage.NewFS(cfg.StorageRoot)
	if err != nil {
		logger.Error("init storage", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, "ferrumtrans_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	effects := shared.NewEffectRunner(logger)
	auditLogger := shared.NewAuditLogger(pool)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditLogger, effects)
	guard := access.Middleware{Directory: usersService, Logger: logger}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, usersRepo)

	settingsService := settings.NewService(settings.NewRepository(pool))

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	notifier := jobs.NewMailNotifier(jobClient, settingsService, cfg.SMTPFrom)

	applicationsService := applications.NewService(applications.NewRepository(pool), notifier, effects)

	mediaService := media.NewService(media.NewRepository(pool), store, logger)
	contactsService := contacts.NewService(contacts.NewRepository(pool), mediaService)
	analyticsService := analytics.NewService(analytics.NewRepository(pool))
	newsService := news.NewService(news.NewRepository(pool))
	mainPageService := mainpage.NewService(mainpage.NewRepository(pool), mediaService, newsService)
	pagesService := pages.NewService(pages.NewRepository(pool))
	auditService := audit.NewService(audit.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Middleware: app.MiddlewareStack(app.MiddlewareConfig{
			Logger:         logger,
			Config:         cfg,
			SessionManager: sessionManager,
			CSRFManager:    csrfManager,
		}),
		AuthHandler:         auth.NewHandler(logger, authService, sessionManager, csrfManager),
		UsersHandler:        users.NewHandler(logger, usersService, guard),
		ApplicationsHandler: applications.NewHandler(logger, applicationsService, guard),
		ContactsHandler:     contacts.NewHandler(logger, contactsService, guard),
		AnalyticsHandler:    analytics.NewHandler(logger, analyticsService, guard),
		NewsHandler:         news.NewHandler(logger, newsService, guard),
		PagesHandler:        pages.NewHandler(logger, pagesService, guard),
		MainPageHandler:     mainpage.NewHandler(logger, mainPageService, guard),
		MediaHandler:        media.NewHandler(logger, mediaService, guard),
		SettingsHandler:     settings.NewHandler(logger, settingsService, guard),
		AuditHandler:        audit.NewHandler(logger, auditService, guard),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
