package models

import "time"

// KnowledgeChunk is one packed passage of a tenant's ingested website text.
// TermFrequencies is computed once at ingestion time and must always equal a
// re-tokenization of Text. Chunks are immutable; re-ingestion replaces a
// tenant's whole set.
type KnowledgeChunk struct {
	ID              string         `json:"id" badgerhold:"key"`
	TenantID        string         `json:"tenant_id" badgerhold:"index"`
	Text            string         `json:"text"`
	TermFrequencies map[string]int `json:"term_frequencies"`
	CreatedAt       time.Time      `json:"created_at"`
}

// RankedChunk is a transient query result; never persisted
type RankedChunk struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
