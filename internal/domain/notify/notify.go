// internal/domain/notify/notify.go
package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RentStatus carries everything a notification channel needs to tell a
// landlord (and optionally a tenant) about one check's outcome.
type RentStatus struct {
	LandlordEmail   string
	TenantEmail     string // may be empty
	PropertyAddress string
	TenantName      string
	Received        bool
	DueDate         time.Time
	Amount          *decimal.Decimal // set when a payment was matched
	NotifyTenant    bool             // tenant reminder wanted when rent is missing
}

// Sender dispatches a rent status notification. Implementations must
// treat failures as non-fatal to the calling check: the caller logs the
// error and records that the notification did not go out.
type Sender interface {
	SendRentStatus(ctx context.Context, status RentStatus) error
}
