package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSnippetPicksAnsweringSentence(t *testing.T) {
	chunk := "Cancellations made late are subject to a fee. " +
		"We are open daily from 10 am to 10 pm. " +
		"Please arrive 10 minutes early."

	snippet := ExtractSnippet(chunk, "what are your opening hours", 200)

	assert.Contains(t, snippet, "10 am to 10 pm")
	assert.LessOrEqual(t, len(snippet), 200)
}

func TestExtractSnippetPolicyPenalty(t *testing.T) {
	chunk := "Our cancellation policy covers opening changes. " +
		"We are open from 9 am until late."

	snippet := ExtractSnippet(chunk, "when do you open", 200)

	// The clock-time sentence beats the policy sentence despite both matching
	assert.Contains(t, snippet, "9 am")
}

func TestExtractSnippetMaxLen(t *testing.T) {
	chunk := strings.Repeat("massage therapy is available every day of the week here ", 10) + "."

	snippet := ExtractSnippet(chunk, "massage", 80)

	assert.LessOrEqual(t, len(snippet), 80+len("…"))
	assert.True(t, strings.HasSuffix(snippet, "…"))
}

func TestExtractSnippetNoOverlap(t *testing.T) {
	chunk := "First short sentence here. A noticeably longer second sentence follows right after it."

	snippet := ExtractSnippet(chunk, "zebra quantum", 200)

	// Without any overlap the shortest sentence wins deterministically,
	// then the follow-up is appended because there is room
	assert.True(t, strings.HasPrefix(snippet, "First short sentence here."))
}

func TestExtractSnippetEmptyChunk(t *testing.T) {
	assert.Equal(t, "", ExtractSnippet("", "anything", 200))
}
