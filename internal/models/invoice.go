package models

import "time"

// Invoice status lifecycle: pending -> sent -> paid, or pending -> paid directly.
// The inbound pipeline only ever creates invoices in pending status; the
// transition endpoints own the rest.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
)

// Invoice represents a payment request raised from the payment intent
type Invoice struct {
	ID            string    `json:"id" badgerhold:"key"`
	TenantID      string    `json:"tenant_id" badgerhold:"index"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Paylink       string    `json:"paylink"`
	CustomerPhone string    `json:"customer_phone"`
	CreatedAt     time.Time `json:"created_at"`
}
