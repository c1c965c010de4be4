// Package report delivers fire-and-forget service events to an external
// HTTP endpoint: a shutdown event when the coordinator triggers, and
// periodic health reports on a cron schedule.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/exitwise/gracedown/shutdown"
)

const defaultRequestTimeout = 5 * time.Second

// Config holds reporting endpoint options.
type Config struct {
	// APIURL is the endpoint receiving POSTed events.
	APIURL string

	// Token, when set, is sent as a bearer token.
	Token string

	// Service identifies the reporting process in every event body.
	Service string

	// Development suppresses all sends.
	Development bool
}

// payload is the JSON event body. Signal and Time are only set for
// shutdown events.
type payload struct {
	Service string `json:"service"`
	Signal  string `json:"signal,omitempty"`
	Time    string `json:"time,omitempty"`
}

// Client posts service events to the configured endpoint.
type Client struct {
	logger     *slog.Logger
	cfg        Config
	httpClient *http.Client
}

// New creates a reporting client.
func New(logger *slog.Logger, cfg Config) (*Client, error) {
	if cfg.APIURL == "" && !cfg.Development {
		return nil, ErrNoAPIURL
	}

	if cfg.Service == "" {
		return nil, ErrNoService
	}

	return &Client{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}, nil
}

var _ shutdown.EventReporter = (*Client)(nil)

// ReportShutdown posts the triggering signal and timestamp.
func (c *Client) ReportShutdown(ctx context.Context, signal string, at time.Time) error {
	return c.post(ctx, payload{
		Service: c.cfg.Service,
		Signal:  signal,
		Time:    at.UTC().Format(time.RFC3339),
	})
}

// ReportHealth posts a bare liveness event for the service.
func (c *Client) ReportHealth(ctx context.Context) error {
	return c.post(ctx, payload{
		Service: c.cfg.Service,
	})
}

func (c *Client) post(ctx context.Context, p payload) error {
	if c.cfg.Development {
		c.logger.DebugContext(ctx, "development mode, skipping report",
			"service", p.Service,
			"signal", p.Signal,
		)

		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("post report: %w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return nil
}
