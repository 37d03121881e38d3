package text

import (
	"strings"
	"unicode"
)

// stopWords is the fixed English stop set dropped from term-frequency maps
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "in": {}, "to": {},
	"for": {}, "on": {}, "at": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "with": {}, "by": {}, "from": {}, "that": {}, "this": {},
	"it": {}, "as": {}, "we": {}, "you": {}, "your": {}, "our": {},
	"their": {}, "they": {}, "i": {},
}

// Tokenize lowercases text, replaces every character that is not a letter,
// digit or whitespace with a space, and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	return strings.Fields(cleaned)
}

// NormalizeToken applies a light singularization heuristic: strip a trailing
// possessive, rewrite "ies" to "y", drop a plural "s". Not a real stemmer.
func NormalizeToken(token string) string {
	if strings.HasSuffix(token, "'s") {
		token = token[:len(token)-2]
	} else if strings.HasSuffix(token, "’s") {
		token = strings.TrimSuffix(token, "’s")
	}

	if strings.HasSuffix(token, "ies") {
		return token[:len(token)-3] + "y"
	}
	if strings.HasSuffix(token, "s") && len(token) > 3 {
		return token[:len(token)-1]
	}
	return token
}

// TokenizeNormalized tokenizes and normalizes in one pass; used on queries
// and sentences when matching against term-frequency maps.
func TokenizeNormalized(text string) []string {
	tokens := Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = NormalizeToken(tok)
	}
	return tokens
}

// TermFreq computes the term-frequency map stored on a knowledge chunk.
// Stop words and long pure-digit tokens (phone numbers, postal codes) are
// dropped; remaining tokens are normalized and counted.
func TermFreq(text string) map[string]int {
	tf := make(map[string]int)

	for _, tok := range Tokenize(text) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		norm := NormalizeToken(tok)
		if len(norm) >= 4 && isDigits(norm) {
			continue
		}
		tf[norm]++
	}

	return tf
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
