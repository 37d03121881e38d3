package interfaces

import (
	"context"

	"github.com/quickdesk/concierge/internal/models"
)

// TenantStorage - interface for tenant persistence
type TenantStorage interface {
	SaveTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	GetTenantByEmail(ctx context.Context, email string) (*models.Tenant, error)
	ListTenants(ctx context.Context) ([]*models.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

// ChunkStorage - interface for knowledge chunk persistence.
// Chunks are replaced wholesale per tenant; there is no incremental update.
type ChunkStorage interface {
	ListChunks(ctx context.Context, tenantID string) ([]*models.KnowledgeChunk, error)
	ReplaceChunks(ctx context.Context, tenantID string, chunks []*models.KnowledgeChunk) (int, error)
	CountChunks(ctx context.Context, tenantID string) (int, error)
	DeleteChunks(ctx context.Context, tenantID string) error
}

// BookingStorage - interface for booking persistence
type BookingStorage interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, tenantID string) ([]*models.Booking, error)
}

// InvoiceStorage - interface for invoice persistence
type InvoiceStorage interface {
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	UpdateInvoicePaylink(ctx context.Context, id, paylink string) error
	UpdateInvoiceStatus(ctx context.Context, id, status string) (*models.Invoice, error)
	ListInvoices(ctx context.Context, tenantID string) ([]*models.Invoice, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	TenantStorage() TenantStorage
	ChunkStorage() ChunkStorage
	BookingStorage() BookingStorage
	InvoiceStorage() InvoiceStorage
	Close() error
}
