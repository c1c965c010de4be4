package shutdown_test

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/exitwise/gracedown/shutdown"
)

func TestNotify(t *testing.T) {
	t.Parallel()

	signals := shutdown.Notify()
	require.NotNil(t, signals)

	select {
	case sig := <-signals:
		t.Fatalf("unexpected signal before any was sent: %v", sig)
	default:
	}
}

func TestCoordinator_SignalTriggersSequence(t *testing.T) {
	t.Parallel()

	var finalizerRuns atomic.Int32

	c := shutdown.New(shutdown.Config{
		Timeout: time.Second,
		Logger:  slog.Default(),
		NoExit:  true,
		Finalizer: func() {
			finalizerRuns.Add(1)
		},
	})

	signals := make(chan os.Signal, 1)
	c.Start(t.Context(), signals)

	signals <- syscall.SIGTERM

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("sequence did not complete after signal")
	}

	require.Equal(t, int32(1), finalizerRuns.Load())
	require.Equal(t, shutdown.StateTerminated, c.State())
}

func TestCoordinator_FirstSignalWins(t *testing.T) {
	t.Parallel()

	var finalizerRuns atomic.Int32

	c := shutdown.New(shutdown.Config{
		Timeout: time.Second,
		Logger:  slog.Default(),
		NoExit:  true,
		Finalizer: func() {
			finalizerRuns.Add(1)
		},
	})

	// Buffered like the Notify channel: a burst of signals must still
	// produce exactly one sequence.
	signals := make(chan os.Signal, 2)
	signals <- syscall.SIGTERM
	signals <- syscall.SIGINT

	c.Start(t.Context(), signals)

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("sequence did not complete after signals")
	}

	// Let the listener swallow the second signal.
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, int32(1), finalizerRuns.Load())
}

func TestCoordinator_ListenerStopsOnContextDone(t *testing.T) {
	t.Parallel()

	var finalizerRuns atomic.Int32

	c := shutdown.New(shutdown.Config{
		Timeout: time.Second,
		Logger:  slog.Default(),
		NoExit:  true,
		Finalizer: func() {
			finalizerRuns.Add(1)
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	signals := make(chan os.Signal, 1)

	c.Start(ctx, signals)
	cancel()

	// A signal after listener shutdown must not trigger the sequence.
	time.Sleep(50 * time.Millisecond)
	signals <- syscall.SIGTERM
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, int32(0), finalizerRuns.Load())
	require.Equal(t, shutdown.StateIdle, c.State())
}
