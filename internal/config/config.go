package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the daemon configuration, loaded once from the environment.
type Config struct {
	LogLevel        string
	LogFormat       string
	HTTPPort        string
	MetricsPort     string
	ShutdownTimeout time.Duration
	Development     bool
	ForceExit       bool
	ReportAPIURL    string
	ReportToken     string
	ReportService   string
	ReportSchedule  string
	ReportTZ        string
}

// Load reads configuration from the environment, applying defaults and
// validating durations.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:       getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:      getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:       getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:    getEnvOrDefault(envKeyMetricsPort, "9090"),
		ReportAPIURL:   os.Getenv(envKeyReportAPIURL),
		ReportToken:    os.Getenv(envKeyReportToken),
		ReportService:  getEnvOrDefault(envKeyReportService, "gracedownd"),
		ReportSchedule: getEnvOrDefault(envKeyReportSchedule, "*/5 * * * *"),
		ReportTZ:       os.Getenv(envKeyReportTZ),
	}

	timeout, err := getEnvDuration(envKeyShutdownTimeout, envMinShutdownTimeout, "30s")
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout = timeout

	development, err := getEnvBool(envKeyDevelopment, false)
	if err != nil {
		return nil, err
	}

	cfg.Development = development

	forceExit, err := getEnvBool(envKeyForceExit, true)
	if err != nil {
		return nil, err
	}

	cfg.ForceExit = forceExit

	return cfg, nil
}

// ReportingEnabled reports whether an event endpoint is configured.
func (c *Config) ReportingEnabled() bool {
	return c.ReportAPIURL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, minValue time.Duration, defaultValue string) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < minValue {
		return 0, fmt.Errorf("parse %s: %q is below minimum %s", key, raw, minValue)
	}

	return value, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return value, nil
}
