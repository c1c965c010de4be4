package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/exitwise/gracedown/shutdown"
)

type statusResponse struct {
	State     string    `json:"state"`
	Uptime    string    `json:"uptime"`
	StartTime time.Time `json:"startTime"`
	UptimeSec float64   `json:"uptimeSeconds"`
}

type workResponse struct {
	Slept string `json:"slept"`
}

// serving reports whether the coordinator has not begun terminating.
func (s *Server) serving() bool {
	return s.stater.State() == shutdown.StateIdle
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.serving() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.serving() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	select {
	case <-s.ready:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uptime := time.Since(s.startedAt)

	response := statusResponse{
		State:     string(s.stater.State()),
		Uptime:    uptime.String(),
		StartTime: s.startedAt,
		UptimeSec: uptime.Seconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode status response",
			"error", err,
		)
	}
}

// handleWork simulates an in-flight request; ?duration=2s controls how long
// it holds the connection. Useful for watching the drain phase let running
// requests finish while new ones are refused.
func (s *Server) handleWork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sleep := 1 * time.Second

	if raw := r.URL.Query().Get("duration"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			http.Error(w, "invalid duration", http.StatusBadRequest)

			return
		}

		sleep = parsed
	}

	if sleep > workMaxDuration {
		sleep = workMaxDuration
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(sleep):
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(workResponse{Slept: sleep.String()}); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode work response",
			"error", err,
		)
	}
}
