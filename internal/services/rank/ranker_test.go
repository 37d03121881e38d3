package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/text"
)

func makeChunk(id, body string) *models.KnowledgeChunk {
	return &models.KnowledgeChunk{
		ID:              id,
		TenantID:        "tenant_test",
		Text:            body,
		TermFrequencies: text.TermFreq(body),
	}
}

func testChunks() []*models.KnowledgeChunk {
	return []*models.KnowledgeChunk{
		makeChunk("chunk_hours", "We are open daily from 10 am to 10 pm. Walk-ins are welcome."),
		makeChunk("chunk_price", "A 60 minute massage costs 250 AED. Facials start at 180 AED."),
		makeChunk("chunk_policy", "Cancellations made late are subject to a fee. Please arrive early."),
	}
}

func TestQueryTerms(t *testing.T) {
	terms := QueryTerms("what are your opening hours")

	assert.Contains(t, terms, "opening")
	assert.Contains(t, terms, "open")
	assert.Contains(t, terms, "hour")

	// Stop and meta words never survive
	assert.NotContains(t, terms, "what")
	assert.NotContains(t, terms, "are")
	assert.NotContains(t, terms, "your")
}

func TestQueryTermsEmpty(t *testing.T) {
	assert.Empty(t, QueryTerms(""))
	assert.Empty(t, QueryTerms("what are your"))
}

func TestRankChunksByTFIDF(t *testing.T) {
	chunks := testChunks()

	results := RankChunksByTFIDF(chunks, "what are your opening hours", 3)

	require.NotEmpty(t, results)
	assert.Equal(t, "chunk_hours", results[0].ID)

	// Chunks with no term overlap are excluded, not ranked last
	for _, r := range results {
		assert.NotEqual(t, "chunk_policy", r.ID)
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestRankChunksByTFIDFOrdering(t *testing.T) {
	chunks := testChunks()

	results := RankChunksByTFIDF(chunks, "massage price", 3)

	require.NotEmpty(t, results)
	assert.Equal(t, "chunk_price", results[0].ID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankChunksByTFIDFTopK(t *testing.T) {
	chunks := []*models.KnowledgeChunk{
		makeChunk("c1", "massage massage massage"),
		makeChunk("c2", "massage massage"),
		makeChunk("c3", "massage"),
	}

	results := RankChunksByTFIDF(chunks, "massage", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].ID)
	assert.Equal(t, "c2", results[1].ID)
}

func TestRankChunksByTFIDFNoSignal(t *testing.T) {
	chunks := testChunks()

	assert.Nil(t, RankChunksByTFIDF(chunks, "", 3))
	assert.Nil(t, RankChunksByTFIDF(chunks, "what is", 3))
	assert.Nil(t, RankChunksByTFIDF(nil, "massage", 3))
}

func TestRankChunksByTFIDFDeterministic(t *testing.T) {
	chunks := testChunks()

	first := RankChunksByTFIDF(chunks, "opening hours", 3)
	second := RankChunksByTFIDF(chunks, "opening hours", 3)

	assert.Equal(t, first, second)
}

func TestBuildInverseDocumentFrequencies(t *testing.T) {
	chunks := []*models.KnowledgeChunk{
		makeChunk("c1", "massage facial"),
		makeChunk("c2", "massage nails"),
		makeChunk("c3", "massage pedicure"),
	}

	idf := BuildInverseDocumentFrequencies(chunks)

	// Rare terms outscore ubiquitous ones; everything stays positive
	assert.Greater(t, idf["facial"], idf["massage"])
	for term, score := range idf {
		assert.Greater(t, score, 0.0, "idf for %q must be positive", term)
	}
}
