package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/exitwise/gracedown/internal/config"
	"github.com/exitwise/gracedown/internal/httpserver"
	"github.com/exitwise/gracedown/internal/infra/logging"
	"github.com/exitwise/gracedown/report"
	"github.com/exitwise/gracedown/shutdown"
)

// App wires the daemon: config, logging, reporting, HTTP servers and the
// shutdown coordinator.
type App struct {
	logger        *slog.Logger
	cfg           *config.Config
	coordinator   *shutdown.Coordinator
	server        *httpserver.Server
	metricsServer *httpserver.MetricsServer
	scheduler     *report.Scheduler
}

// New creates a new application instance with all dependencies wired.
func New(cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.LogFormat, cfg.LogLevel)

	a := &App{
		logger: logger,
		cfg:    cfg,
	}

	// The server reads coordinator state through the app, which breaks the
	// construction cycle between server and coordinator.
	a.server = httpserver.New(logger, a, cfg.HTTPPort)
	a.metricsServer = httpserver.NewMetricsServer(logger, cfg.MetricsPort)

	var reporter shutdown.EventReporter

	if cfg.ReportingEnabled() {
		client, err := report.New(logger, report.Config{
			APIURL:      cfg.ReportAPIURL,
			Token:       cfg.ReportToken,
			Service:     cfg.ReportService,
			Development: cfg.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("new report client: %w", err)
		}

		reporter = client

		scheduler, err := report.NewScheduler(logger, client, cfg.ReportSchedule, cfg.ReportTZ)
		if err != nil {
			return nil, fmt.Errorf("new report scheduler: %w", err)
		}

		a.scheduler = scheduler
	}

	a.coordinator = shutdown.New(shutdown.Config{
		Timeout:     cfg.ShutdownTimeout,
		Development: cfg.Development,
		Logger:      logger,
		Server:      a.server,
		Reporter:    reporter,
		NoExit:      !cfg.ForceExit,
	})

	a.coordinator.Register(a.metricsServer.Handler(), a.metricsServer.Name())

	if a.scheduler != nil {
		a.coordinator.Register(a.scheduler.Handler(), a.scheduler.Name())
	}

	return a, nil
}

// State reports the coordinator state; the HTTP server's health endpoints
// read it through this method.
func (a *App) State() shutdown.State {
	if a.coordinator == nil {
		return shutdown.StateIdle
	}

	return a.coordinator.State()
}

// Run starts all components and blocks until the shutdown sequence completes
// or ctx is cancelled before readiness.
func (a *App) Run(ctx context.Context, signals <-chan os.Signal) error {
	a.coordinator.Start(ctx, signals)

	if err := a.metricsServer.Start(ctx); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}

	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start report scheduler: %w", err)
		}
	}

	ready := allChannelsClose(ctx, a.logger, a.server.Ready(), a.metricsServer.Ready())

	select {
	case <-ctx.Done():
		return fmt.Errorf("context done before service ready: %w", ctx.Err())
	case <-ready:
		a.logger.InfoContext(ctx, "service ready",
			"httpPort", a.cfg.HTTPPort,
			"metricsPort", a.cfg.MetricsPort,
		)
	}

	select {
	case <-ctx.Done():
		// External cancellation runs the same sequence as a signal.
		a.coordinator.Trigger(nil)

		return nil
	case <-a.coordinator.Done():
		return nil
	}
}

// allChannelsClose returns a channel closed once every input channel has
// closed, or early when ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for _, ch := range chans {
			select {
			case <-ctx.Done():
				logger.InfoContext(ctx, "context done while waiting for readiness")

				return
			case <-ch:
			}
		}
	}()

	return out
}
