package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
)

// mockInvoiceStorage implements interfaces.InvoiceStorage for testing
type mockInvoiceStorage struct {
	updateStatusFunc func(ctx context.Context, id, status string) (*models.Invoice, error)
}

func (m *mockInvoiceStorage) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return nil
}

func (m *mockInvoiceStorage) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return nil, interfaces.ErrNotFound
}

func (m *mockInvoiceStorage) UpdateInvoicePaylink(ctx context.Context, id, paylink string) error {
	return nil
}

func (m *mockInvoiceStorage) UpdateInvoiceStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockInvoiceStorage) ListInvoices(ctx context.Context, tenantID string) ([]*models.Invoice, error) {
	return nil, nil
}

// mockStorageManager implements interfaces.StorageManager for testing
type mockStorageManager struct {
	invoices interfaces.InvoiceStorage
}

func (m *mockStorageManager) TenantStorage() interfaces.TenantStorage   { return nil }
func (m *mockStorageManager) ChunkStorage() interfaces.ChunkStorage     { return nil }
func (m *mockStorageManager) BookingStorage() interfaces.BookingStorage { return nil }
func (m *mockStorageManager) InvoiceStorage() interfaces.InvoiceStorage { return m.invoices }
func (m *mockStorageManager) Close() error                              { return nil }

func newInvoiceHandlerWithMock(updateStatus func(ctx context.Context, id, status string) (*models.Invoice, error)) *InvoiceHandler {
	storage := &mockStorageManager{
		invoices: &mockInvoiceStorage{updateStatusFunc: updateStatus},
	}
	return NewInvoiceHandler(storage, common.GetLogger())
}

func TestMarkPaidHandler(t *testing.T) {
	var gotID, gotStatus string
	handler := newInvoiceHandlerWithMock(func(ctx context.Context, id, status string) (*models.Invoice, error) {
		gotID, gotStatus = id, status
		return &models.Invoice{ID: id, Status: status}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/inv_123/mark-paid", nil)
	rec := httptest.NewRecorder()

	handler.MarkPaidHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inv_123", gotID)
	assert.Equal(t, models.InvoiceStatusPaid, gotStatus)
}

func TestMarkPaidHandlerRedirect(t *testing.T) {
	handler := newInvoiceHandlerWithMock(func(ctx context.Context, id, status string) (*models.Invoice, error) {
		return &models.Invoice{ID: id, Status: status}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv_123/mark-paid?next=/portal/invoices", nil)
	rec := httptest.NewRecorder()

	handler.MarkPaidHandler(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/portal/invoices", rec.Header().Get("Location"))
}

func TestMarkPaidHandlerRejectsExternalRedirect(t *testing.T) {
	handler := newInvoiceHandlerWithMock(func(ctx context.Context, id, status string) (*models.Invoice, error) {
		return &models.Invoice{ID: id, Status: status}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv_123/mark-paid?next=https://evil.example", nil)
	rec := httptest.NewRecorder()

	handler.MarkPaidHandler(rec, req)

	// Absolute URLs are not followed; the invoice JSON comes back instead
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestMarkPaidHandlerNotFound(t *testing.T) {
	handler := newInvoiceHandlerWithMock(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/inv_missing/mark-paid", nil)
	rec := httptest.NewRecorder()

	handler.MarkPaidHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendHandler(t *testing.T) {
	var gotStatus string
	handler := newInvoiceHandlerWithMock(func(ctx context.Context, id, status string) (*models.Invoice, error) {
		gotStatus = status
		return &models.Invoice{ID: id, Status: status}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/inv_123/send", nil)
	rec := httptest.NewRecorder()

	handler.SendHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.InvoiceStatusSent, gotStatus)
}

func TestSendHandlerMethodNotAllowed(t *testing.T) {
	handler := newInvoiceHandlerWithMock(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv_123/send", nil)
	rec := httptest.NewRecorder()

	handler.SendHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
