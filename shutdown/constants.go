package shutdown

import "time"

const (
	// DefaultTimeout bounds the handler-drain phase when Config.Timeout is unset.
	DefaultTimeout = 30 * time.Second

	// graceDelay is the fixed pause before process exit, letting asynchronous
	// side effects such as log flushes settle.
	graceDelay = 1 * time.Second

	// reportTimeout bounds the fire-and-forget shutdown report.
	reportTimeout = 5 * time.Second

	// anonymousHandlerName is used in logs for handlers registered without a name.
	anonymousHandlerName = "anonymous"

	defaultHandlersCount = 10
)
