package models

import "time"

// BookingSourceWhatsApp marks bookings created from the simulated WhatsApp channel
const BookingSourceWhatsApp = "wa"

// Booking is created exactly once per qualifying inbound message.
// Mutation, if any, belongs to the portal UI, not this service.
type Booking struct {
	ID            string    `json:"id" badgerhold:"key"`
	TenantID      string    `json:"tenant_id" badgerhold:"index"`
	Service       string    `json:"service"`
	StartTime     time.Time `json:"start_time"`
	CustomerPhone string    `json:"customer_phone"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}
