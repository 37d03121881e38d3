package rank

// snippetStop drops meta-question words when scoring snippet sentences
var snippetStop = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "how": {},
	"why": {}, "can": {}, "do": {}, "does": {}, "is": {}, "are": {},
	"your": {}, "you": {}, "me": {}, "please": {}, "tell": {}, "about": {},
	"any": {}, "give": {}, "need": {}, "info": {}, "information": {},
	"kind": {}, "type": {},
}

// queryStop is the broader stop set applied to retrieval queries; it extends
// the snippet set with modal and auxiliary verbs that carry no topical signal.
var queryStop = func() map[string]struct{} {
	stop := map[string]struct{}{
		"am": {}, "was": {}, "were": {}, "be": {}, "been": {}, "could": {},
		"would": {}, "should": {}, "will": {}, "shall": {}, "might": {},
		"may": {}, "us": {}, "did": {},
	}
	for word := range snippetStop {
		stop[word] = struct{}{}
	}
	return stop
}()

// ExpandTokens grows each query token into a small morphological family:
// common suffixes stripped plus a fixed synonym table, deduplicated.
func ExpandTokens(tokens []string) []string {
	seen := make(map[string]struct{})
	var expanded []string

	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		expanded = append(expanded, tok)
	}

	for _, tok := range tokens {
		add(tok)

		n := len(tok)
		if n > 4 {
			switch {
			case hasSuffix(tok, "ing"):
				add(tok[:n-3])
			case hasSuffix(tok, "ed"), hasSuffix(tok, "ly"), hasSuffix(tok, "es"):
				add(tok[:n-2])
			}
		}
		if n > 3 && hasSuffix(tok, "s") {
			add(tok[:n-1])
		}

		switch tok {
		case "opening", "opened":
			add("open")
		case "closing", "closed":
			add("close")
		case "hours":
			add("hour")
		case "services", "service":
			add("service")
			add("services")
		}
	}

	return expanded
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
