package report

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// schedule computes cron occurrences for the health-report loop.
type schedule struct {
	inner cron.Schedule
}

// parseSchedule parses a five-field cron spec. If tz is non-empty and the
// spec has no CRON_TZ=/TZ= prefix, it prepends CRON_TZ=<tz>. Defaults to UTC
// when no tz is given.
func parseSchedule(spec, tz string) (*schedule, error) {
	fullSpec := buildSpec(spec, tz)

	parsed, err := _parser.Parse(fullSpec)
	if err != nil {
		return nil, fmt.Errorf("parse report schedule %q: %w", spec, err)
	}

	return &schedule{inner: parsed}, nil
}

// nextAfter returns the next occurrence strictly after the given time.
func (s *schedule) nextAfter(after time.Time) time.Time {
	return s.inner.Next(after)
}

func buildSpec(spec, tz string) string {
	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if tz != "" && !hasTZPrefix {
		return "CRON_TZ=" + tz + " " + spec
	}

	if !hasTZPrefix {
		return "CRON_TZ=UTC " + spec
	}

	return spec
}
