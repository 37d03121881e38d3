package when

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "tomorrow after 3pm",
			input:    "book me tomorrow after 3pm",
			expected: time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC),
		},
		{
			name:     "after without meridiem assumes afternoon",
			input:    "anytime after 3",
			expected: time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		},
		{
			name:     "at with meridiem",
			input:    "can I come at 2pm",
			expected: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "at with minutes",
			input:    "at 14:45 works",
			expected: time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC),
		},
		{
			name:     "around small hour assumes afternoon",
			input:    "around 7 maybe",
			expected: time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC),
		},
		{
			name:     "midnight edge",
			input:    "by 12am",
			expected: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "tomorrow alone keeps default slot",
			input:    "tomorrow please",
			expected: time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "no time phrase falls back",
			input:    "massage please",
			expected: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "at inside another word is ignored",
			input:    "what 3 services do you offer",
			expected: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input, base))
		})
	}
}

func TestParseKeepsLocation(t *testing.T) {
	loc := time.FixedZone("GST", 4*60*60)
	localBase := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	result := Parse("tomorrow at 2pm", localBase)

	assert.Equal(t, loc, result.Location())
	assert.Equal(t, 14, result.Hour())
	assert.Equal(t, 11, result.Day())
}
