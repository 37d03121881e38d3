package models

import "time"

// ReplyKind is the closed set of inbound reply variants. Every kind has
// exactly one handler branch in the inbound orchestrator.
type ReplyKind string

const (
	ReplyKindQuiet   ReplyKind = "quiet"
	ReplyKindFAQ     ReplyKind = "faq"
	ReplyKindBooking ReplyKind = "booking"
	ReplyKindPayment ReplyKind = "payment"
)

// InboundMessage is one message received on the simulated messaging channel
type InboundMessage struct {
	TenantID string `json:"tenantId" validate:"required,min=1"`
	From     string `json:"from" validate:"required,min=1"`
	Text     string `json:"text" validate:"required,min=1"`
}

// InboundReply is the orchestrator's response envelope. Optional fields are
// populated per kind: ChunkID for faq, BookingID/Start for booking,
// InvoiceID/Paylink for payment.
type InboundReply struct {
	Kind      ReplyKind  `json:"type"`
	Reply     string     `json:"reply"`
	ChunkID   string     `json:"chunkId,omitempty"`
	BookingID string     `json:"bookingId,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	InvoiceID string     `json:"invoiceId,omitempty"`
	Paylink   string     `json:"paylink,omitempty"`
}

// TenantCreateRequest is the onboarding payload
type TenantCreateRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"website" validate:"required,url"`
}
