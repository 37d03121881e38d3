// Package kb implements knowledge-base ingestion and retrieval on top of
// the chunk store.
package kb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/rank"
	"github.com/quickdesk/concierge/internal/services/text"
)

var (
	// ErrTenantNotFound is returned when the target tenant does not exist
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoChunks is returned when the source HTML yields no usable text
	ErrNoChunks = errors.New("no chunks could be extracted from source")

	// ErrFixtureUnavailable is returned when no HTML was supplied and the
	// fixture fallback cannot be read
	ErrFixtureUnavailable = errors.New("fixture source unavailable")
)

type service struct {
	storage interfaces.StorageManager
	config  *common.Config
	logger  arbor.ILogger

	// Per-tenant locks serialize concurrent re-ingestions so a tenant's
	// chunk set is always the product of exactly one source document.
	ingestLocks sync.Map // tenantID -> *sync.Mutex
}

// NewService creates a knowledge service backed by the given storage
func NewService(storage interfaces.StorageManager, config *common.Config, logger arbor.ILogger) interfaces.KnowledgeService {
	return &service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

func (s *service) tenantLock(tenantID string) *sync.Mutex {
	lock, _ := s.ingestLocks.LoadOrStore(tenantID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Ingest converts HTML into packed chunks and atomically replaces the
// tenant's chunk set. An empty html argument falls back to the configured
// fixture file.
func (s *service) Ingest(ctx context.Context, tenantID, html string) (*interfaces.IngestResult, error) {
	if _, err := s.storage.TenantStorage().GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant %s: %w", tenantID, err)
	}

	source := html
	if strings.TrimSpace(source) == "" {
		data, err := os.ReadFile(s.config.Ingest.FixturePath)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", s.config.Ingest.FixturePath).Msg("Fixture fallback unreadable")
			return nil, ErrFixtureUnavailable
		}
		source = string(data)
	}

	plain, err := text.HTMLToText(source)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from HTML: %w", err)
	}

	pieces := text.SplitIntoChunks(plain, s.config.Ingest.MaxChunkChars, nil)
	if len(pieces) == 0 {
		return nil, ErrNoChunks
	}

	chunks := make([]*models.KnowledgeChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, &models.KnowledgeChunk{
			TenantID:        tenantID,
			Text:            piece,
			TermFrequencies: text.TermFreq(piece),
		})
	}

	lock := s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.storage.ChunkStorage().ReplaceChunks(ctx, tenantID, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to replace chunks for tenant %s: %w", tenantID, err)
	}

	s.logger.Info().
		Str("tenant_id", tenantID).
		Int("chunks", count).
		Msg("Knowledge base ingested")

	return &interfaces.IngestResult{Chunks: count}, nil
}

// Search ranks the tenant's chunks against the query. A tenant with no
// ingested chunks yields an empty result, not an error.
func (s *service) Search(ctx context.Context, tenantID, query string, topK int) ([]models.RankedChunk, error) {
	if _, err := s.storage.TenantStorage().GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant %s: %w", tenantID, err)
	}

	if topK <= 0 {
		topK = s.config.Search.TopK
	}

	chunks, err := s.storage.ChunkStorage().ListChunks(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks for tenant %s: %w", tenantID, err)
	}

	results := rank.RankChunksByTFIDF(chunks, query, topK)

	s.logger.Debug().
		Str("tenant_id", tenantID).
		Str("query", query).
		Int("results", len(results)).
		Msg("Knowledge search completed")

	return results, nil
}
