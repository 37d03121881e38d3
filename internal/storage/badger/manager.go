package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db      *BadgerDB
	tenant  interfaces.TenantStorage
	chunk   interfaces.ChunkStorage
	booking interfaces.BookingStorage
	invoice interfaces.InvoiceStorage
	logger  arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:      db,
		tenant:  NewTenantStorage(db, logger),
		chunk:   NewChunkStorage(db, logger),
		booking: NewBookingStorage(db, logger),
		invoice: NewInvoiceStorage(db, logger),
		logger:  logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// TenantStorage returns the Tenant storage interface
func (m *Manager) TenantStorage() interfaces.TenantStorage {
	return m.tenant
}

// ChunkStorage returns the KnowledgeChunk storage interface
func (m *Manager) ChunkStorage() interfaces.ChunkStorage {
	return m.chunk
}

// BookingStorage returns the Booking storage interface
func (m *Manager) BookingStorage() interfaces.BookingStorage {
	return m.booking
}

// InvoiceStorage returns the Invoice storage interface
func (m *Manager) InvoiceStorage() interfaces.InvoiceStorage {
	return m.invoice
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
