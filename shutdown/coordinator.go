// Package shutdown coordinates graceful process termination: it intercepts
// termination signals, drains an optional HTTP server, runs registered
// cleanup handlers under a bounded time budget, and guarantees the process
// exits exactly once regardless of handler behavior.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/exitwise/gracedown/internal/infra/metrics"
)

// triggerManual is logged and reported when Trigger is called without a signal.
const triggerManual = "manual"

// Coordinator owns the handler registry and the shutdown state machine.
// At most one shutdown sequence executes per Coordinator lifetime.
type Coordinator struct {
	cfg       Config
	logger    *slog.Logger
	registry  *Registry
	states    *stateMachine
	triggered atomic.Bool
	done      chan struct{}
	exit      func(code int)
}

// New creates a coordinator from cfg with defaults applied.
func New(cfg Config) *Coordinator {
	cfg = cfg.withDefaults()

	c := &Coordinator{
		cfg:      cfg,
		logger:   cfg.Logger,
		registry: NewRegistry(cfg.Logger),
		states:   newStateMachine(),
		done:     make(chan struct{}),
		exit:     os.Exit,
	}

	c.logger.Info("shutdown coordinator initialized",
		"timeout", cfg.Timeout,
		"development", cfg.Development,
		"forceExit", !cfg.NoExit,
	)

	return c
}

// Register appends a cleanup handler; see Registry.Register. It cannot fail
// and may be called any number of times before shutdown begins.
func (c *Coordinator) Register(fn HandlerFunc, name ...string) {
	c.registry.Register(fn, name...)
}

// Start launches the signal listener in a goroutine. Pass the channel from
// Notify. The listener stops when ctx is done or the channel closes.
func (c *Coordinator) Start(ctx context.Context, signals <-chan os.Signal) {
	go c.listen(ctx, signals)
}

// State returns the coordinator's current state.
func (c *Coordinator) State() State {
	return c.states.current()
}

// Done returns a channel closed once the sequence reaches the terminated
// state. Only observable with Config.NoExit; otherwise the process exits first.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Trigger starts the shutdown sequence and blocks until it completes.
// A nil signal marks a manual trigger. Only the first call (or the first
// received signal, whichever wins) runs the sequence; later calls are no-ops.
func (c *Coordinator) Trigger(sig os.Signal) {
	name := signalName(sig)

	if !c.triggered.CompareAndSwap(false, true) {
		c.logger.Debug("shutdown already in progress, ignoring trigger", "signal", name)

		return
	}

	c.run(name)
}

// run executes the full sequence: report, drain, handlers, finalizer,
// grace delay, exit.
func (c *Coordinator) run(signal string) {
	metrics.RecordSignalReceived(signal)

	if c.cfg.Development {
		c.logger.Info("development mode, skipping shutdown handlers and exiting", "signal", signal)
		c.terminate()

		return
	}

	c.report(signal)

	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	c.transition(StateDraining)
	c.registry.seal()
	c.drainServer(ctx)

	c.transition(StateRunningHandlers)

	handlersDone := make(chan struct{})

	go func() {
		c.registry.drainAll(ctx)
		close(handlersDone)
	}()

	select {
	case <-handlersDone:
		c.logger.Info("all shutdown handlers executed",
			"handlers", c.registry.Len(),
			"duration", time.Since(start),
		)
	case <-ctx.Done():
		// The losing goroutine is cancelled through ctx but not awaited; a
		// handler that ignores its context may still log before the exit.
		c.logger.Error("shutdown timed out, abandoning remaining handlers",
			"timeout", c.cfg.Timeout,
		)
	}

	c.transition(StateFinalizing)
	c.finalize()
	metrics.RecordShutdownCompleted(signal)

	time.Sleep(graceDelay)
	c.terminate()
}

// report fires the shutdown event at the configured reporter without
// blocking the sequence. Failures are logged and dropped.
func (c *Coordinator) report(signal string) {
	if c.cfg.Reporter == nil {
		return
	}

	at := time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		if err := c.cfg.Reporter.ReportShutdown(ctx, signal, at); err != nil {
			c.logger.Error("shutdown report failed", "reason", err)
		}
	}()
}

// finalize runs the configured finalizer, catching errors it panics with.
// With no finalizer configured it logs a completion message instead.
func (c *Coordinator) finalize() {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("finalizer panicked", "reason", rec)
		}
	}()

	if c.cfg.Finalizer == nil {
		c.logger.Info("shutdown sequence complete")

		return
	}

	c.cfg.Finalizer()
}

// terminate moves to the absorbing terminated state and exits the process
// unless NoExit is set. The exit code is always 0.
func (c *Coordinator) terminate() {
	c.transition(StateTerminated)
	close(c.done)

	if !c.cfg.NoExit {
		c.exit(0)
	}
}

// transition advances the state machine; a rejected transition indicates a
// coordinator bug and is logged rather than propagated.
func (c *Coordinator) transition(next State) {
	if err := c.states.transition(next); err != nil {
		c.logger.Error("state transition rejected", "next", next, "reason", err)
	}
}
