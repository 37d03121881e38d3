// Package quiet implements the time-zone-aware quiet-hours gate that can
// preempt the whole inbound pipeline.
package quiet

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
)

var hhmmPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Gate evaluates the configured quiet-hours window. The config is injected
// once at construction; deep logic never reads the environment.
type Gate struct {
	config *common.QuietHoursConfig
	logger arbor.ILogger
}

// NewGate creates a quiet-hours gate for the given configuration
func NewGate(config *common.QuietHoursConfig, logger arbor.ILogger) *Gate {
	return &Gate{
		config: config,
		logger: logger,
	}
}

// parseHHMM reads an "HH:MM" string, clamping out-of-range components.
// Malformed input yields midnight rather than an error.
func parseHHMM(input string) (hours, minutes int) {
	m := hhmmPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, 0
	}

	hours, _ = strconv.Atoi(m[1])
	minutes, _ = strconv.Atoi(m[2])

	if hours > 23 {
		hours = 23
	}
	if minutes > 59 {
		minutes = 59
	}
	return hours, minutes
}

// IsWithin reports whether now falls inside the quiet window. A degenerate
// window (start == end) is never quiet; start > end wraps past midnight.
func (g *Gate) IsWithin(now time.Time) bool {
	if !g.config.Enabled {
		return false
	}

	loc, err := time.LoadLocation(g.config.Timezone)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn().Err(err).Str("timezone", g.config.Timezone).Msg("Unknown quiet-hours timezone, falling back to UTC")
		}
		loc = time.UTC
	}

	local := now.In(loc)
	currentMinutes := local.Hour()*60 + local.Minute()

	startH, startM := parseHHMM(g.config.Start)
	endH, endM := parseHHMM(g.config.End)
	startMinutes := startH*60 + startM
	endMinutes := endH*60 + endM

	if startMinutes == endMinutes {
		return false
	}

	if startMinutes < endMinutes {
		// Same-day window
		return currentMinutes >= startMinutes && currentMinutes < endMinutes
	}
	// Overnight window
	return currentMinutes >= startMinutes || currentMinutes < endMinutes
}

// Message builds the fixed advisory reply embedding the configured window
func (g *Gate) Message() string {
	return fmt.Sprintf("We're currently observing quiet hours (%s-%s %s). Please check in later.",
		g.config.Start, g.config.End, g.config.Timezone)
}
