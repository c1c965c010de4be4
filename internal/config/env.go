package config

import "time"

// Env key constants. All daemon configuration env vars use the GRACEDOWN_
// prefix; duration values use explicit units (e.g. 30s, 2m).

// Log level: debug, info, warn, error.
const envKeyLogLevel = "GRACEDOWN_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "GRACEDOWN_LOG_FORMAT"

// Port for the service HTTP server.
const envKeyHTTPPort = "GRACEDOWN_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "GRACEDOWN_METRICS_PORT"

// Budget for server drain plus shutdown handlers. Units: s, m (e.g. 30s).
const (
	envKeyShutdownTimeout = "GRACEDOWN_SHUTDOWN_TIMEOUT"
	envMinShutdownTimeout = time.Second
)

// Development mode: skip handlers and exit immediately on a signal.
const envKeyDevelopment = "GRACEDOWN_DEVELOPMENT"

// Whether the process exits on its own after the sequence (default true).
const envKeyForceExit = "GRACEDOWN_FORCE_EXIT"

// Endpoint receiving POSTed service events; reporting is off when unset.
const envKeyReportAPIURL = "GRACEDOWN_REPORT_API_URL"

// Bearer token for the report endpoint.
const envKeyReportToken = "GRACEDOWN_REPORT_TOKEN"

// Service name used in report bodies.
const envKeyReportService = "GRACEDOWN_REPORT_SERVICE"

// Five-field cron spec for periodic health reports.
const envKeyReportSchedule = "GRACEDOWN_REPORT_SCHEDULE"

// IANA timezone for the report schedule (e.g. America/New_York).
const envKeyReportTZ = "GRACEDOWN_REPORT_TZ"
