package common

import (
	"github.com/google/uuid"
)

// NewTenantID generates a unique tenant ID with the "tenant_" prefix
func NewTenantID() string {
	return "tenant_" + uuid.New().String()
}

// NewChunkID generates a unique knowledge chunk ID with the "chunk_" prefix
func NewChunkID() string {
	return "chunk_" + uuid.New().String()
}

// NewBookingID generates a unique booking ID with the "bkg_" prefix
func NewBookingID() string {
	return "bkg_" + uuid.New().String()
}

// NewInvoiceID generates a unique invoice ID with the "inv_" prefix
func NewInvoiceID() string {
	return "inv_" + uuid.New().String()
}
