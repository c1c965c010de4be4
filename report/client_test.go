package report_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/exitwise/gracedown/report"
)

type recordedRequest struct {
	method        string
	contentType   string
	authorization string
	body          map[string]any
}

func newRecordingServer(t *testing.T, status int, got *recordedRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.authorization = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))

		w.WriteHeader(status)
	}))
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("missing api url returns error", func(t *testing.T) {
		t.Parallel()

		_, err := report.New(logger, report.Config{Service: "svc"})
		require.ErrorIs(t, err, report.ErrNoAPIURL)
	})

	t.Run("missing api url allowed in development", func(t *testing.T) {
		t.Parallel()

		client, err := report.New(logger, report.Config{Service: "svc", Development: true})
		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("missing service returns error", func(t *testing.T) {
		t.Parallel()

		_, err := report.New(logger, report.Config{APIURL: "http://localhost:1"})
		require.ErrorIs(t, err, report.ErrNoService)
	})
}

func TestClient_ReportShutdown(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("posts signal and timestamp with bearer token", func(t *testing.T) {
		t.Parallel()

		var got recordedRequest

		srv := newRecordingServer(t, http.StatusOK, &got)
		defer srv.Close()

		client, err := report.New(logger, report.Config{
			APIURL:  srv.URL,
			Token:   "secret",
			Service: "payments",
		})
		require.NoError(t, err)

		at := time.Date(2026, 8, 27, 12, 30, 0, 0, time.UTC)

		require.NoError(t, client.ReportShutdown(t.Context(), "SIGTERM", at))

		require.Equal(t, http.MethodPost, got.method)
		require.Equal(t, "application/json", got.contentType)
		require.Equal(t, "Bearer secret", got.authorization)
		require.Equal(t, "payments", got.body["service"])
		require.Equal(t, "SIGTERM", got.body["signal"])
		require.Equal(t, "2026-08-27T12:30:00Z", got.body["time"])
	})

	t.Run("error status is reported", func(t *testing.T) {
		t.Parallel()

		var got recordedRequest

		srv := newRecordingServer(t, http.StatusBadGateway, &got)
		defer srv.Close()

		client, err := report.New(logger, report.Config{
			APIURL:  srv.URL,
			Service: "payments",
		})
		require.NoError(t, err)

		err = client.ReportShutdown(t.Context(), "SIGINT", time.Now())
		require.ErrorIs(t, err, report.ErrUnexpectedStatus)
	})

	t.Run("development mode suppresses the request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, err := report.New(logger, report.Config{
			APIURL:      srv.URL,
			Service:     "payments",
			Development: true,
		})
		require.NoError(t, err)

		require.NoError(t, client.ReportShutdown(t.Context(), "SIGTERM", time.Now()))
		require.Equal(t, int32(0), hits.Load())
	})
}

func TestClient_ReportHealth(t *testing.T) {
	t.Parallel()

	var got recordedRequest

	srv := newRecordingServer(t, http.StatusAccepted, &got)
	defer srv.Close()

	client, err := report.New(slog.Default(), report.Config{
		APIURL:  srv.URL,
		Service: "payments",
	})
	require.NoError(t, err)

	require.NoError(t, client.ReportHealth(t.Context()))

	require.Equal(t, "payments", got.body["service"])
	require.NotContains(t, got.body, "signal")
	require.NotContains(t, got.body, "time")
}
