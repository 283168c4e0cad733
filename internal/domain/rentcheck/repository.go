// internal/domain/rentcheck/repository.go
package rentcheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for RentCheck records.
type Repository interface {
	Create(ctx context.Context, check *RentCheck) error
	// UpdateNotified sets the notification-dispatched flags after the
	// sender has run.
	UpdateNotified(ctx context.Context, id uuid.UUID, landlordNotified, tenantNotified bool) error
	// FindRecentForProperty returns the newest check for the property
	// whose check date is on or after since. Used by the batch driver
	// to skip properties already checked this cycle.
	FindRecentForProperty(ctx context.Context, propertyID uuid.UUID, since time.Time) (*RentCheck, error)
}
