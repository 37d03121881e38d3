// Package scheduler runs periodic knowledge-base re-ingestion for all tenants.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
)

type service struct {
	storage   interfaces.StorageManager
	knowledge interfaces.KnowledgeService
	config    *common.Config
	logger    arbor.ILogger

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewService creates a re-ingestion scheduler. It does nothing until Start
// is called, and Start is a no-op when processing is disabled in config.
func NewService(storage interfaces.StorageManager, knowledge interfaces.KnowledgeService, config *common.Config, logger arbor.ILogger) interfaces.SchedulerService {
	return &service{
		storage:   storage,
		knowledge: knowledge,
		config:    config,
		logger:    logger,
		cron:      cron.New(cron.WithSeconds()),
	}
}

func (s *service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if !s.config.Processing.Enabled {
		s.logger.Info().Msg("Scheduled re-ingestion disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Processing.Schedule, s.reingestAll); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", s.config.Processing.Schedule).
		Msg("Scheduled re-ingestion started")

	return nil
}

func (s *service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Timed out waiting for running re-ingestion jobs")
	}

	s.running = false
	s.logger.Info().Msg("Scheduled re-ingestion stopped")
}

func (s *service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// reingestAll refreshes every tenant's knowledge base from the fixture
// source. Per-tenant failures are logged and skipped.
func (s *service) reingestAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tenants, err := s.storage.TenantStorage().ListTenants(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list tenants for re-ingestion")
		return
	}

	refreshed := 0
	for _, tenant := range tenants {
		result, err := s.knowledge.Ingest(ctx, tenant.ID, "")
		if err != nil {
			s.logger.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("Tenant re-ingestion failed")
			continue
		}
		refreshed++
		s.logger.Debug().
			Str("tenant_id", tenant.ID).
			Int("chunks", result.Chunks).
			Msg("Tenant knowledge refreshed")
	}

	s.logger.Info().
		Int("tenants", len(tenants)).
		Int("refreshed", refreshed).
		Msg("Re-ingestion cycle completed")
}
