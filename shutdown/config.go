package shutdown

import (
	"log/slog"
	"time"
)

// Config holds coordinator options. The zero value is usable: 30s timeout,
// production mode, default logger, no server, no reporter, exit on completion.
// It is normalized once in New and never mutated afterwards.
type Config struct {
	// Timeout bounds the server-drain plus handler-drain phases.
	// Values <= 0 fall back to DefaultTimeout.
	Timeout time.Duration

	// Development skips the whole drain/handler/finalizer pipeline and exits
	// immediately, to keep iterative restarts fast.
	Development bool

	// Finalizer runs after the handler phase resolves. When nil, the
	// coordinator logs a completion message instead. Errors and panics from
	// the finalizer are caught and logged.
	Finalizer func()

	// Logger receives all coordinator diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Server, when set, is drained before handlers run.
	Server DrainableServer

	// Reporter, when set, receives a fire-and-forget shutdown event.
	Reporter EventReporter

	// NoExit disables the final os.Exit call so the embedding process (or a
	// test) can observe Done() instead. The default is to force exit.
	NoExit bool
}

// withDefaults returns a copy with unset fields replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return cfg
}
