package interfaces

import (
	"context"

	"github.com/quickdesk/concierge/internal/models"
)

// IngestResult reports how many chunks an ingestion produced
type IngestResult struct {
	Chunks int `json:"chunks"`
}

// KnowledgeService owns ingestion and retrieval over a tenant's chunk set
type KnowledgeService interface {
	// Ingest converts HTML into packed chunks and replaces the tenant's set.
	// An empty html argument falls back to the configured fixture file.
	Ingest(ctx context.Context, tenantID, html string) (*IngestResult, error)

	// Search ranks the tenant's chunks against the query and returns topK results
	Search(ctx context.Context, tenantID, query string, topK int) ([]models.RankedChunk, error)
}

// InboundService processes one simulated channel message end to end
type InboundService interface {
	HandleInbound(ctx context.Context, msg *models.InboundMessage) (*models.InboundReply, error)
}

// SchedulerService runs periodic background re-ingestion
type SchedulerService interface {
	Start() error
	Stop()
	IsRunning() bool
}
