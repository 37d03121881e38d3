package rank

import (
	"regexp"
	"strings"

	"github.com/quickdesk/concierge/internal/services/text"
)

var (
	hoursWordPattern    = regexp.MustCompile(`\b(open|opening|close|closing|hour|hours)\b`)
	clockTimePattern    = regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s?(am|pm)\b`)
	numericRangePattern = regexp.MustCompile(`\b\d{1,2}\s?[–-]\s?\d{1,2}\b`)
	policyPattern       = regexp.MustCompile(`\b(policy|policies|deposit|cancellation)\b`)
)

// timeIntentTerms mark a query as asking about opening times, which unlocks
// sentence bonuses for hours words, clock times and numeric ranges.
var timeIntentTerms = map[string]struct{}{
	"hour": {}, "hours": {}, "time": {}, "open": {}, "opening": {},
	"close": {}, "closing": {},
}

// ExtractSnippet picks the sentence of a chunk that best answers the query
// and fits it into maxLen characters, appending the following sentence when
// there is room. Used to turn the winning chunk into a short reply.
func ExtractSnippet(chunkText, query string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 200
	}

	sentences := text.SplitSentences(chunkText)
	if len(sentences) == 0 {
		return truncateEllipsis(chunkText, maxLen)
	}

	var rawTokens []string
	for _, tok := range text.TokenizeNormalized(query) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := snippetStop[tok]; stop {
			continue
		}
		rawTokens = append(rawTokens, tok)
	}

	expandedTerms := ExpandTokens(rawTokens)

	timeIntent := false
	queryTerms := make(map[string]struct{}, len(expandedTerms))
	for _, term := range expandedTerms {
		queryTerms[term] = struct{}{}
		if _, ok := timeIntentTerms[term]; ok {
			timeIntent = true
		}
	}

	bestIdx := 0
	bestScore := -1.0e18

	for idx, sentence := range sentences {
		score := scoreSentence(sentence, idx, queryTerms, timeIntent)
		if score > bestScore {
			bestScore = score
			bestIdx = idx
		}
	}

	snippet := sentences[bestIdx]

	// A short winner gets its follow-up sentence when the pair still fits
	if len(snippet)*10 < maxLen*6 && bestIdx+1 < len(sentences) {
		combined := strings.TrimSpace(snippet + " " + sentences[bestIdx+1])
		if len(combined) <= maxLen {
			snippet = combined
		}
	}

	return truncateEllipsis(snippet, maxLen)
}

func scoreSentence(sentence string, index int, queryTerms map[string]struct{}, timeIntent bool) float64 {
	tokens := text.TokenizeNormalized(sentence)
	if len(tokens) == 0 {
		return -1
	}

	overlap := 0
	uniques := make(map[string]struct{})
	for _, tok := range tokens {
		if _, ok := queryTerms[tok]; ok {
			overlap++
			uniques[tok] = struct{}{}
		}
	}

	if overlap == 0 {
		// Deterministic ordering even without a match; shorter wins
		return -float64(len(tokens)) * 0.01
	}

	density := float64(overlap) / float64(len(tokens))
	score := float64(len(uniques))*2 + density

	lowered := strings.ToLower(sentence)

	if timeIntent {
		if hoursWordPattern.MatchString(lowered) {
			score += 0.75
		}
		if clockTimePattern.MatchString(lowered) {
			score += 1.0
		}
		if numericRangePattern.MatchString(lowered) {
			score += 0.8
		}
	}

	if policyPattern.MatchString(lowered) {
		score -= 0.4
	}

	// Slight bias towards earlier sentences when scores tie closely
	score -= float64(index) * 0.01

	return score
}

func truncateEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Drop any rune split by the byte cut
	cut := strings.ToValidUTF8(s[:maxLen], "")
	return strings.TrimSpace(cut) + "…"
}
