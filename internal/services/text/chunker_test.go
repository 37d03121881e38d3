package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n\n\n\nThird."
	paragraphs := SplitParagraphs(text)

	require.Len(t, paragraphs, 3)
	assert.Equal(t, "First paragraph.", paragraphs[0])
	assert.Equal(t, "Third.", paragraphs[2])
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "splits on terminator before capital",
			input: "We open at 10 am. Walk-ins are welcome.",
			expected: []string{
				"We open at 10 am.",
				"Walk-ins are welcome.",
			},
		},
		{
			name:  "splits before digit",
			input: "Prices below. 60 minutes costs 250 AED.",
			expected: []string{
				"Prices below.",
				"60 minutes costs 250 AED.",
			},
		},
		{
			name:  "does not split before lowercase",
			input: "Open daily, e.g. on weekends too.",
			expected: []string{
				"Open daily, e.g. on weekends too.",
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSentences(tt.input))
		})
	}
}

func TestSplitIntoChunksBounds(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This sentence fills the chunk with steady text. ")
	}

	maxChars := 200
	chunks := SplitIntoChunks(sb.String(), maxChars, nil)

	require.Greater(t, len(chunks), 1)

	// Overlap seeding may push a chunk slightly past maxChars
	limit := maxChars + maxChars*15/100 + 1
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		assert.LessOrEqual(t, len(chunk), limit)
	}
}

func TestSplitIntoChunksOverlap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This sentence fills the chunk with steady text. ")
	}

	chunks := SplitIntoChunks(sb.String(), 200, nil)
	require.Greater(t, len(chunks), 1)

	// Each later chunk starts with the tail of its predecessor
	for i := 1; i < len(chunks); i++ {
		overlap := tailChars(chunks[i-1], 200*15/100)
		assert.True(t, strings.HasPrefix(chunks[i], overlap),
			"chunk %d should start with the previous chunk's tail", i)
	}
}

func TestSplitIntoChunksOversizedSentence(t *testing.T) {
	long := strings.Repeat("verylongword ", 30)
	chunks := SplitIntoChunks(long, 100, nil)

	// A sentence beyond maxChars is emitted alone, never split mid-sentence
	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(long), chunks[0])
}

func TestSplitIntoChunksSingleShortText(t *testing.T) {
	chunks := SplitIntoChunks("Just one short sentence.", 700, nil)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Just one short sentence.", chunks[0])
}

func TestSplitIntoChunksEmpty(t *testing.T) {
	assert.Empty(t, SplitIntoChunks("", 700, nil))
	assert.Empty(t, SplitIntoChunks("   \n\n  ", 700, nil))
}
