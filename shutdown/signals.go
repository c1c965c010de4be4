package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Notify returns a channel that will receive SIGTERM and SIGINT signals.
// This should be called as the first thing in main() before any other initialization.
func Notify() <-chan os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

	return signals
}

// signalName maps the recognized termination signals to their conventional
// names; report endpoints expect "SIGTERM", not Go's "terminated".
func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGINT:
		return "SIGINT"
	case nil:
		return triggerManual
	default:
		return sig.String()
	}
}

// listen triggers the coordinator on the first received signal of either
// kind and swallows later ones, so a double Ctrl-C or a duplicate SIGTERM
// from an orchestrator cannot start a second sequence or restore the default
// signal disposition mid-shutdown.
func (c *Coordinator) listen(ctx context.Context, signals <-chan os.Signal) {
	select {
	case <-ctx.Done():
		c.logger.InfoContext(ctx, "terminating signal listener due to context done")

		return
	case sig, ok := <-signals:
		if !ok {
			return
		}

		c.logger.InfoContext(ctx, "received termination signal", "signal", sig.String())
		c.Trigger(sig)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}

			c.logger.DebugContext(ctx, "ignoring duplicate termination signal", "signal", sig.String())
		}
	}
}
