package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	t.Run("standard spec returns next occurrence", func(t *testing.T) {
		t.Parallel()

		sched, err := parseSchedule("40 7 * * *", "")
		require.NoError(t, err)

		after := time.Date(2026, 8, 27, 7, 0, 0, 0, time.UTC)
		next := sched.nextAfter(after)

		require.True(t, next.After(after))
		require.Equal(t, 7, next.Hour())
		require.Equal(t, 40, next.Minute())
	})

	t.Run("with tz uses timezone", func(t *testing.T) {
		t.Parallel()

		sched, err := parseSchedule("0 8 * * *", "America/New_York")
		require.NoError(t, err)

		after := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
		next := sched.nextAfter(after)

		require.True(t, next.After(after))
	})

	t.Run("inline CRON_TZ ignores tz param", func(t *testing.T) {
		t.Parallel()

		sched, err := parseSchedule("CRON_TZ=UTC 0 14 * * *", "America/New_York")
		require.NoError(t, err)

		after := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
		next := sched.nextAfter(after)

		require.Equal(t, 14, next.UTC().Hour())
	})

	t.Run("malformed spec returns error", func(t *testing.T) {
		t.Parallel()

		_, err := parseSchedule("invalid", "")
		require.Error(t, err)
	})
}

func TestBuildSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		giveSpec string
		giveTZ   string
		want     string
	}{
		{
			name:     "no tz defaults to UTC",
			giveSpec: "*/5 * * * *",
			want:     "CRON_TZ=UTC */5 * * * *",
		},
		{
			name:     "tz is prepended",
			giveSpec: "*/5 * * * *",
			giveTZ:   "Europe/Berlin",
			want:     "CRON_TZ=Europe/Berlin */5 * * * *",
		},
		{
			name:     "existing CRON_TZ prefix is kept",
			giveSpec: "CRON_TZ=UTC 0 0 * * *",
			giveTZ:   "Europe/Berlin",
			want:     "CRON_TZ=UTC 0 0 * * *",
		},
		{
			name:     "existing TZ prefix is kept",
			giveSpec: "TZ=UTC 0 0 * * *",
			want:     "TZ=UTC 0 0 * * *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, buildSpec(tt.giveSpec, tt.giveTZ))
		})
	}
}
