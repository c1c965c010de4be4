package shutdown

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/exitwise/gracedown/internal/infra/metrics"
)

// HandlerFunc is a cleanup callback run during shutdown. The context carries
// the sequence deadline; implementations should respect it.
type HandlerFunc func(ctx context.Context) error

// Handler is a registered cleanup callback. Immutable once registered and
// never removed; the registry lives as long as the process.
type Handler struct {
	Name string
	Func HandlerFunc
}

// Registry is an ordered collection of named cleanup handlers.
type Registry struct {
	logger   *slog.Logger
	mu       sync.Mutex
	handlers []Handler
	sealed   atomic.Bool
}

// NewRegistry creates an empty handler registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		handlers: make([]Handler, 0, defaultHandlersCount),
	}
}

// Register appends a handler. The optional name is used in log lines;
// unnamed handlers log as "anonymous". Registrations after the shutdown
// sequence has begun are rejected with an error log.
func (r *Registry) Register(fn HandlerFunc, name ...string) {
	handlerName := anonymousHandlerName
	if len(name) > 0 && name[0] != "" {
		handlerName = name[0]
	}

	if fn == nil {
		r.logger.Error("ignoring nil shutdown handler", "handler", handlerName)

		return
	}

	if r.sealed.Load() {
		r.logger.Error("handler registered after shutdown began, ignoring",
			"handler", handlerName,
			"reason", ErrShutdownInProgress,
		)

		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = append(r.handlers, Handler{Name: handlerName, Func: fn})
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handlers)
}

// seal rejects further registrations. Called once when the sequence starts.
func (r *Registry) seal() {
	r.sealed.Store(true)
}

// drainAll runs every handler sequentially in registration order. Each
// invocation is isolated: an error or panic is logged and iteration
// continues. Once the context deadline passes, remaining handlers are
// skipped; the handler currently running is cancelled through its context
// but, if it ignores cancellation, may still log after the coordinator has
// moved on.
func (r *Registry) drainAll(ctx context.Context) {
	r.mu.Lock()
	handlers := make([]Handler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.Unlock()

	for _, h := range handlers {
		if ctx.Err() != nil {
			r.logger.ErrorContext(ctx, "shutdown deadline passed, skipping remaining handlers",
				"handler", h.Name,
			)

			return
		}

		start := time.Now()

		if err := runHandler(ctx, h); err != nil {
			metrics.RecordHandlerRun(h.Name, metrics.ResultError)
			r.logger.ErrorContext(ctx, "shutdown handler failed",
				"handler", h.Name,
				"duration", time.Since(start),
				"reason", err,
			)

			continue
		}

		metrics.RecordHandlerRun(h.Name, metrics.ResultSuccess)
		r.logger.InfoContext(ctx, "shutdown handler completed",
			"handler", h.Name,
			"duration", time.Since(start),
		)
	}
}

// runHandler invokes one handler, converting a panic into an error.
func runHandler(ctx context.Context, h Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	return h.Func(ctx)
}
