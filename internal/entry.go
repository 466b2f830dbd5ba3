// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/api"
	"github.com/flix/flixsite/internal/devwatch"
	"github.com/flix/flixsite/internal/export"
	"github.com/flix/flixsite/internal/mcpserver"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/pageviews"
	"github.com/flix/flixsite/internal/richtext"
	"github.com/flix/flixsite/internal/sse"
	"github.com/flix/flixsite/internal/storage"
	"github.com/flix/flixsite/internal/web"
)

var errConfigRequired = errors.New("config is required")

func (a *application) logger() *slog.Logger {
	var out io.Writer = os.Stdout
	if a.logOutput != nil {
		out = a.logOutput
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func (a *application) renderer(registry *pages.Registry) (*web.Renderer, error) {
	site := web.Site{
		Name:       a.config.Site.Name,
		BaseURL:    a.config.Site.BaseURL,
		LiveReload: a.config.Assets.LiveReload(),
	}
	return web.NewRenderer(site, registry, richtext.NewHTMLRenderer())
}

// openStats opens the pageview store when analytics are kept in SQLite.
// It returns nil otherwise.
func (a *application) openStats() (*pageviews.Store, error) {
	if a.config.Analytics.Mode != AnalyticsSQLite {
		return nil, nil
	}
	store, err := pageviews.Open(a.config.Analytics.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("init pageview store: %w", err)
	}
	return store, nil
}

// Run starts the HTTP server with the given options and blocks until ctx is
// cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("analytics_mode", cfg.Analytics.Mode),
		slog.String("assets_dir", cfg.Assets.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	registry := pages.Default()
	renderer, err := app.renderer(registry)
	if err != nil {
		return err
	}

	stats, err := app.openStats()
	if err != nil {
		return err
	}
	if stats != nil {
		defer stats.Close()
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Analytics: every hit is broadcast live; log and SQLite sinks follow
	// the configured mode.
	var (
		recorder   analytics.Recorder = analytics.Discard
		dispatcher *analytics.Dispatcher
		apiStats   api.Stats
	)
	if cfg.Analytics.Mode != AnalyticsDisabled {
		sinks := []analytics.Sink{analytics.NewLogSink(logger), broker}
		if stats != nil {
			sinks = append(sinks, stats)
			apiStats = stats
		}
		dispatcher = analytics.NewDispatcher(cfg.Analytics.Buffer, logger, sinks...)
		recorder = dispatcher
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api, SSE included.
	r.Mount("/api", api.NewRouter(registry, apiStats, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, logger))

	// Pages, outbound redirect and static assets.
	r.Mount("/", web.NewRouter(web.NewHandler(registry, renderer, recorder, cfg.Assets.Dir, logger)))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Analytics worker. It drains the buffer once the group shuts down.
	if dispatcher != nil {
		g.Go(func() error {
			return dispatcher.Run(gCtx)
		})
	}

	// Asset watcher with SSE callback.
	if cfg.Assets.LiveReload() {
		g.Go(func() error {
			err := devwatch.Watch(gCtx, cfg.Assets.Dir, devwatch.DefaultDebounce, logger, func(paths []string) {
				broker.PublishAssetsChanged(paths...)
			})
			if err != nil {
				logger.Warn("asset watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Closing the broker ends open SSE streams.
		broker.Close()

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	if dispatcher != nil {
		logger.Info("Analytics drained",
			slog.Int64("delivered", dispatcher.Delivered()),
			slog.Int64("dropped", dispatcher.Dropped()))
	}
	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so background workers stop with the server.
var errShutdown = errors.New("shutdown")

// Export renders the site into outDir.
func Export(ctx context.Context, outDir string, prune bool, opts ...Option) (*export.Manifest, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	logger := app.logger()

	registry := pages.Default()
	renderer, err := app.renderer(registry)
	if err != nil {
		return nil, err
	}
	out, err := storage.NewFS(outDir)
	if err != nil {
		return nil, fmt.Errorf("init output dir: %w", err)
	}

	logger.Info("Exporting site", slog.String("out", out.Root()))
	return export.Run(ctx, registry, renderer, out, export.Options{
		AssetsDir: app.config.Assets.Dir,
		Prune:     prune,
		Logger:    logger,
	})
}

// ServeMCP runs the MCP server over stdio. Logs go to stderr since stdout
// carries the protocol.
func ServeMCP(_ context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger()

	stats, err := app.openStats()
	if err != nil {
		return err
	}
	var mcpStats mcpserver.Stats
	if stats != nil {
		defer stats.Close()
		mcpStats = stats
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(pages.Default(), mcpStats, app.version).ServeStdio()
}
