package actor

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the three participant types on the platform.
type Kind string

const (
	KindRetailer Kind = "RETAILER"
	KindSupplier Kind = "SUPPLIER"
	KindIndustry Kind = "INDUSTRY"
)

// Actor represents a retailer, supplier, or industry tenant.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	TradeName string    `json:"trade_name,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Street    string    `json:"street,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateActorRequest is the payload for registering an actor.
type CreateActorRequest struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	TradeName string `json:"trade_name,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
}
