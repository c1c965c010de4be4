package shutdown

import (
	"context"
	"time"
)

// drainServer stops the configured server from accepting new connections and
// waits for in-flight requests to finish, bounded by the sequence deadline.
// A drain error (typically context.DeadlineExceeded with stubborn
// connections) is logged; the sequence proceeds to the handler phase either
// way.
func (c *Coordinator) drainServer(ctx context.Context) {
	if c.cfg.Server == nil {
		return
	}

	start := time.Now()

	c.logger.InfoContext(ctx, "draining server connections")

	if err := c.cfg.Server.Shutdown(ctx); err != nil {
		c.logger.ErrorContext(ctx, "server drain failed",
			"duration", time.Since(start),
			"reason", err,
		)

		return
	}

	c.logger.InfoContext(ctx, "server drained",
		"duration", time.Since(start),
	)
}
