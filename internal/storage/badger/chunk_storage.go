package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ChunkStorage) ListChunks(ctx context.Context, tenantID string) ([]*models.KnowledgeChunk, error) {
	var chunks []models.KnowledgeChunk
	err := s.db.Store().Find(&chunks, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	result := make([]*models.KnowledgeChunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

// ReplaceChunks deletes the tenant's existing chunk set and inserts the new
// one. Chunks without an ID are assigned one here. Callers serialize
// replacement per tenant; badgerhold does not give us a cross-call transaction.
func (s *ChunkStorage) ReplaceChunks(ctx context.Context, tenantID string, chunks []*models.KnowledgeChunk) (int, error) {
	if err := s.DeleteChunks(ctx, tenantID); err != nil {
		return 0, err
	}

	now := time.Now()
	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = common.NewChunkID()
		}
		chunk.TenantID = tenantID
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}
		if err := s.db.Store().Insert(chunk.ID, chunk); err != nil {
			return 0, fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	s.logger.Debug().
		Str("tenant_id", tenantID).
		Int("chunks", len(chunks)).
		Msg("Replaced tenant chunk set")

	return len(chunks), nil
}

func (s *ChunkStorage) CountChunks(ctx context.Context, tenantID string) (int, error) {
	count, err := s.db.Store().Count(&models.KnowledgeChunk{}, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}

func (s *ChunkStorage) DeleteChunks(ctx context.Context, tenantID string) error {
	err := s.db.Store().DeleteMatching(&models.KnowledgeChunk{}, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	if err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}
