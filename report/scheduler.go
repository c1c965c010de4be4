package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/exitwise/gracedown/shutdown"
)

// Scheduler posts periodic health reports on a cron schedule.
type Scheduler struct {
	logger     *slog.Logger
	reporter   healthReporter
	schedule   *schedule
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    atomic.Bool
	inShutdown atomic.Bool
}

// NewScheduler creates a scheduler posting through reporter on the given
// five-field cron spec. tz is an optional IANA timezone for the spec.
func NewScheduler(logger *slog.Logger, reporter healthReporter, spec, tz string) (*Scheduler, error) {
	sched, err := parseSchedule(spec, tz)
	if err != nil {
		return nil, fmt.Errorf("new report scheduler: %w", err)
	}

	return &Scheduler{
		logger:   logger,
		reporter: reporter,
		schedule: sched,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Name returns the name of the scheduler component.
func (s *Scheduler) Name() string {
	return "report-scheduler"
}

// Start launches the report loop in a goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "report scheduler is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	go s.run(ctx)

	return nil
}

// Handler adapts Shutdown into a coordinator handler. Register it as:
//
//	coordinator.Register(scheduler.Handler(), scheduler.Name())
func (s *Scheduler) Handler() shutdown.HandlerFunc {
	return s.Shutdown
}

// Shutdown stops the report loop and waits for it to exit.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "report scheduler is already shutting down, skipping shutdown")

		return nil
	}

	close(s.stopCh)

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before report loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "report loop exited")
	}

	return nil
}

// run sleeps until each next cron occurrence and posts a health report.
func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "report-run")

	for {
		next := s.schedule.nextAfter(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.InfoContext(ctx, "terminating report loop")

			return
		case <-s.stopCh:
			timer.Stop()
			logger.InfoContext(ctx, "terminating report loop")

			return
		case <-timer.C:
			s.reportOnce(ctx, logger)
		}
	}
}

func (s *Scheduler) reportOnce(ctx context.Context, logger *slog.Logger) {
	reportCtx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	start := time.Now()

	if err := s.reporter.ReportHealth(reportCtx); err != nil {
		logger.ErrorContext(ctx, "health report failed",
			"latency", time.Since(start),
			"reason", err,
		)

		return
	}

	logger.DebugContext(ctx, "health report sent",
		"latency", time.Since(start),
	)
}
