package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to landlord accounts.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
