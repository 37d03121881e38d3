package rank

import (
	"math"
	"sort"

	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/text"
)

// QueryTerms tokenizes a query, drops single-character and stop tokens, and
// expands the survivors. An empty result means the query carries no signal.
func QueryTerms(query string) []string {
	var base []string
	for _, tok := range text.TokenizeNormalized(query) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := queryStop[tok]; stop {
			continue
		}
		base = append(base, tok)
	}
	return ExpandTokens(base)
}

// BuildInverseDocumentFrequencies computes smoothed IDF scores across a
// tenant's chunk set: ln((N+1)/(df+1)) + 1, always positive.
func BuildInverseDocumentFrequencies(chunks []*models.KnowledgeChunk) map[string]float64 {
	documentFrequencies := make(map[string]int)
	totalDocuments := len(chunks)

	for _, chunk := range chunks {
		unique := make(map[string]struct{})
		if len(chunk.TermFrequencies) > 0 {
			for term := range chunk.TermFrequencies {
				unique[term] = struct{}{}
			}
		} else {
			// No precomputed terms; fall back to tokenizing the text
			for _, tok := range text.TokenizeNormalized(chunk.Text) {
				unique[tok] = struct{}{}
			}
		}
		for term := range unique {
			documentFrequencies[term]++
		}
	}

	idfScores := make(map[string]float64, len(documentFrequencies))
	for term, df := range documentFrequencies {
		idfScores[term] = math.Log(float64(totalDocuments+1)/float64(df+1)) + 1
	}

	return idfScores
}

// RankChunksByTFIDF scores every chunk against the expanded query terms and
// returns the topK best, ordered by descending score with chunk order
// breaking ties. Zero-score chunks are excluded entirely.
func RankChunksByTFIDF(chunks []*models.KnowledgeChunk, query string, topK int) []models.RankedChunk {
	if len(chunks) == 0 {
		return nil
	}

	queryTerms := QueryTerms(query)
	if len(queryTerms) == 0 {
		return nil
	}

	idfScores := BuildInverseDocumentFrequencies(chunks)

	var ranked []models.RankedChunk
	for _, chunk := range chunks {
		var score float64
		for _, term := range queryTerms {
			tf := float64(chunk.TermFrequencies[term])
			if tf == 0 {
				continue
			}
			idf, ok := idfScores[term]
			if !ok {
				idf = 1
			}
			score += tf * idf * idf // squared IDF favors rare, specific terms
		}

		if score > 0 {
			ranked = append(ranked, models.RankedChunk{
				ID:    chunk.ID,
				Text:  chunk.Text,
				Score: score,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
