package report

import "context"

// healthReporter is an internal interface for posting liveness events.
type healthReporter interface {
	ReportHealth(ctx context.Context) error
}
