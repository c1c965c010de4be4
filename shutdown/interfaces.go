package shutdown

import (
	"context"
	"net/http"
	"time"
)

// DrainableServer is a listening server that can stop accepting new
// connections while letting in-flight ones finish. *http.Server satisfies it.
type DrainableServer interface {
	Shutdown(ctx context.Context) error
}

var _ DrainableServer = (*http.Server)(nil)

// EventReporter posts the triggering signal and timestamp to an external
// endpoint. A returned error is logged by the coordinator and dropped.
type EventReporter interface {
	ReportShutdown(ctx context.Context, signal string, at time.Time) error
}
