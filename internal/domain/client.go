package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a portal client (owned by a team)
type Client struct {
	ID     uuid.UUID
	TeamID uuid.UUID

	Name  string
	Email string
	Phone string

	BillingAddress    *string
	BillingCity       *string
	BillingProvince   *string
	BillingPostalCode *string

	// Код входа в портал: 8 символов из PortalCodeAlphabet
	PortalCode    string
	PortalEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
