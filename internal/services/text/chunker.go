package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	paragraphBoundary = regexp.MustCompile(`\n{2,}`)
	sentenceBoundary  = regexp.MustCompile(`[.!?]\s+`)
)

// ChunkOptions overrides the derived chunk packing bounds
type ChunkOptions struct {
	MinChars     int
	OverlapChars int
}

// SplitParagraphs splits normalized text on blank-line boundaries
func SplitParagraphs(text string) []string {
	parts := paragraphBoundary.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// SplitSentences breaks a paragraph into sentences wherever end punctuation is
// followed by whitespace and the start of what looks like a new sentence.
// Mid-abbreviation periods will occasionally over-split; accepted limitation.
func SplitSentences(paragraph string) []string {
	var sentences []string
	start := 0

	for _, loc := range sentenceBoundary.FindAllStringIndex(paragraph, -1) {
		next, _ := utf8.DecodeRuneInString(paragraph[loc[1]:])
		if !unicode.IsUpper(next) && !unicode.IsDigit(next) {
			continue
		}
		// Keep the punctuation with the sentence it terminates
		if s := strings.TrimSpace(paragraph[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}

	if s := strings.TrimSpace(paragraph[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// SplitIntoChunks packs sentences into chunks of at most maxChars characters,
// seeding each chunk after the first with the tail of the previous one so
// context survives the boundary. A trailing fragment shorter than minChars is
// merged into the penultimate chunk.
func SplitIntoChunks(text string, maxChars int, opts *ChunkOptions) []string {
	if maxChars <= 0 {
		maxChars = 700
	}

	minChars := maxChars / 2
	overlapChars := maxChars * 15 / 100
	if opts != nil {
		if opts.MinChars > 0 {
			minChars = opts.MinChars
		}
		if opts.OverlapChars > 0 {
			overlapChars = opts.OverlapChars
		}
	}

	var sentences []string
	for _, paragraph := range SplitParagraphs(text) {
		sentences = append(sentences, SplitSentences(paragraph)...)
	}

	var chunks []string
	var buf []string
	length := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		if chunk := strings.TrimSpace(strings.Join(buf, " ")); chunk != "" {
			chunks = append(chunks, chunk)
		}
		buf = buf[:0]
		length = 0
	}

	for _, sentence := range sentences {
		sentenceLen := len(sentence)
		if len(buf) > 0 {
			sentenceLen++ // joining space
		}

		if length+sentenceLen <= maxChars {
			buf = append(buf, sentence)
			length += sentenceLen
			continue
		}

		if length < minChars && len(buf) == 0 {
			// Very long sentence - emit alone rather than split mid-sentence
			chunks = append(chunks, sentence)
			continue
		}

		flush()

		if overlapChars > 0 && len(chunks) > 0 {
			tail := tailChars(chunks[len(chunks)-1], overlapChars)
			buf = append(buf, tail)
			length = len(tail)
		}

		buf = append(buf, sentence)
		length += len(sentence)
		if len(buf) > 1 {
			length++
		}
	}

	flush()

	// Merge a trailing tiny chunk into its predecessor
	if len(chunks) >= 2 {
		last := chunks[len(chunks)-1]
		if len(last) < minChars {
			chunks[len(chunks)-2] = strings.TrimSpace(chunks[len(chunks)-2] + " " + last)
			chunks = chunks[:len(chunks)-1]
		}
	}

	return chunks
}

// tailChars returns the last n bytes of s, moved forward to a rune boundary
func tailChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
