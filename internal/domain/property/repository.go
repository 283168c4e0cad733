package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the operations the check engine needs for properties.
// Property creation/editing happens through the external CRUD surface.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	ListAll(ctx context.Context) ([]*Property, error)
}
