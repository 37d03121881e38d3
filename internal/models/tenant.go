package models

import "time"

// Tenant represents an onboarded business whose website feeds the knowledge base
type Tenant struct {
	ID        string    `json:"id" badgerhold:"key"`
	Name      string    `json:"name"`
	Email     string    `json:"email" badgerhold:"unique"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
}
