// internal/domain/rentcheck/check.go
package rentcheck

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentCheck is one evaluation of a property's due-date cycle: did an
// incoming transaction matching the property's keyword appear around
// the due date. Records are append-only; one is created per cycle by
// the batch, and manual re-runs may add more for the same cycle.
type RentCheck struct {
	ID               uuid.UUID
	PropertyID       uuid.UUID
	CheckDate        time.Time
	RentDueDate      time.Time // always midnight
	RentReceived     bool
	Amount           decimal.NullDecimal // matched transaction amount, if any
	LandlordNotified bool
	TenantNotified   bool
	CreatedAt        time.Time
}

// Result is the per-property outcome surfaced to trigger endpoints and
// batch callers. Failures are carried in Err so one property's problem
// never aborts a batch run.
type Result struct {
	PropertyID   uuid.UUID        `json:"propertyId"`
	Address      string           `json:"address"`
	TenantName   string           `json:"tenantName"`
	RentDueDate  time.Time        `json:"rentDueDate"`
	RentReceived bool             `json:"rentReceived"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Err          string           `json:"error,omitempty"`
}
