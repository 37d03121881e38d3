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

// InvoiceStorage implements the InvoiceStorage interface for Badger
type InvoiceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewInvoiceStorage creates a new InvoiceStorage instance
func NewInvoiceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.InvoiceStorage {
	return &InvoiceStorage{
		db:     db,
		logger: logger,
	}
}

func (s *InvoiceStorage) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = common.NewInvoiceID()
	}
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(invoice.ID, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Debug().
		Str("invoice_id", invoice.ID).
		Str("tenant_id", invoice.TenantID).
		Str("status", invoice.Status).
		Msg("Invoice created")

	return nil
}

func (s *InvoiceStorage) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Store().Get(id, &invoice); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (s *InvoiceStorage) UpdateInvoicePaylink(ctx context.Context, id, paylink string) error {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	invoice.Paylink = paylink
	if err := s.db.Store().Update(id, invoice); err != nil {
		return fmt.Errorf("failed to update invoice paylink: %w", err)
	}
	return nil
}

func (s *InvoiceStorage) UpdateInvoiceStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.Status = status
	if err := s.db.Store().Update(id, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.logger.Debug().
		Str("invoice_id", id).
		Str("status", status).
		Msg("Invoice status updated")

	return invoice, nil
}

func (s *InvoiceStorage) ListInvoices(ctx context.Context, tenantID string) ([]*models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Store().Find(&invoices, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	result := make([]*models.Invoice, len(invoices))
	for i := range invoices {
		result[i] = &invoices[i]
	}
	return result, nil
}
