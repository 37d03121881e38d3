package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/handlers"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/services/inbound"
	"github.com/quickdesk/concierge/internal/services/kb"
	"github.com/quickdesk/concierge/internal/services/quiet"
	"github.com/quickdesk/concierge/internal/services/scheduler"
	"github.com/quickdesk/concierge/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Services
	KnowledgeService interfaces.KnowledgeService
	InboundService   interfaces.InboundService
	SchedulerService interfaces.SchedulerService
	QuietGate        *quiet.Gate

	// Handlers
	APIHandler     *handlers.APIHandler
	TenantHandler  *handlers.TenantHandler
	KBHandler      *handlers.KBHandler
	InboundHandler *handlers.InboundHandler
	InvoiceHandler *handlers.InvoiceHandler
}

// New creates and wires all application components
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	quietGate := quiet.NewGate(&config.QuietHours, logger)
	knowledgeService := kb.NewService(storageManager, config, logger)
	inboundService := inbound.NewService(storageManager, knowledgeService, quietGate, config, logger)
	schedulerService := scheduler.NewService(storageManager, knowledgeService, config, logger)

	app := &App{
		Config:         config,
		Logger:         logger,
		StorageManager: storageManager,

		KnowledgeService: knowledgeService,
		InboundService:   inboundService,
		SchedulerService: schedulerService,
		QuietGate:        quietGate,

		APIHandler:     handlers.NewAPIHandler(),
		TenantHandler:  handlers.NewTenantHandler(storageManager, knowledgeService, config, logger),
		KBHandler:      handlers.NewKBHandler(knowledgeService, config, logger),
		InboundHandler: handlers.NewInboundHandler(inboundService, logger),
		InvoiceHandler: handlers.NewInvoiceHandler(storageManager, logger),
	}

	logger.Info().
		Str("environment", config.Environment).
		Msg("Application components initialized")

	return app, nil
}

// Start starts background services
func (a *App) Start() error {
	if err := a.SchedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	return nil
}

// Close shuts down background services and storage
func (a *App) Close() error {
	a.SchedulerService.Stop()

	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
