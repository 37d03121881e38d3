// Package when parses loose natural-language time expressions for bookings.
// It is a narrow heuristic parser by design: unsupported phrasing silently
// falls through to the 10:30 default rather than failing.
package when

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	afterPattern = regexp.MustCompile(`after\s*(\d{1,2})\s*(am|pm)?`)
	atPattern    = regexp.MustCompile(`\b(?:at|around|by)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// Parse resolves a calendar date-time from phrases like "tomorrow after 3pm"
// or "at 14:00". The base date is now; "tomorrow" advances it one day. The
// fallback slot is 10:30.
func Parse(input string, now time.Time) time.Time {
	s := strings.ToLower(input)

	base := now
	if strings.Contains(s, "tomorrow") {
		base = base.AddDate(0, 0, 1)
	}

	hour, minute := 10, 30

	if m := afterPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		meridiem := m[2]

		if meridiem == "pm" && h < 12 {
			h += 12
		}
		if meridiem == "" && h <= 7 {
			// "after 3" almost always means the afternoon
			h += 12
		}
		hour = h
	} else if m := atPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		meridiem := m[3]

		if meridiem == "pm" && h < 12 {
			h += 12
		}
		if meridiem == "am" && h == 12 {
			h = 0
		}
		if meridiem == "" && h <= 7 {
			h += 12
		}
		hour = h

		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		} else {
			minute = 0
		}
	}

	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}
