package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Handler run results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var signalsReceivedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "gracedown_signals_received_total",
		Help: "Total number of termination triggers received, including duplicates ignored by the first-signal-wins guard.",
	},
	[]string{"signal"},
)

var handlerRunsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "gracedown_handler_runs_total",
		Help: "Total number of shutdown handler invocations by handler name and result.",
	},
	[]string{"handler", "result"},
)

var shutdownsCompletedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "gracedown_shutdowns_completed_total",
		Help: "Total number of shutdown sequences that reached the finalizing phase.",
	},
	[]string{"signal"},
)

// RecordSignalReceived increments the trigger counter for the given signal name.
func RecordSignalReceived(signal string) {
	signalsReceivedTotal.WithLabelValues(signal).Inc()
}

// RecordHandlerRun increments the handler-run counter for the given handler and result.
func RecordHandlerRun(handler, result string) {
	handlerRunsTotal.WithLabelValues(handler, result).Inc()
}

// RecordShutdownCompleted increments the completed-sequence counter for the given signal name.
func RecordShutdownCompleted(signal string) {
	shutdownsCompletedTotal.WithLabelValues(signal).Inc()
}
