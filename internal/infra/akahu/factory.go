// internal/infra/akahu/factory.go
package akahu

import (
	"context"
	"fmt"

	"rentlite/internal/domain/bank"
	"rentlite/internal/domain/user"

	"github.com/google/uuid"
)

// Factory builds per-user aggregator clients from tokens stored on the
// user record. Implements bank.ClientFactory.
type Factory struct {
	userRepo user.Repository
	baseURL  string
}

func NewFactory(userRepo user.Repository, baseURL string) *Factory {
	return &Factory{userRepo: userRepo, baseURL: baseURL}
}

func (f *Factory) ClientForUser(ctx context.Context, userID uuid.UUID) (bank.Client, error) {
	u, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	if !u.AkahuAppToken.Valid || u.AkahuAppToken.String == "" ||
		!u.AkahuUserToken.Valid || u.AkahuUserToken.String == "" {
		return nil, bank.ErrNotConfigured
	}

	return NewClient(f.baseURL, u.AkahuAppToken.String, u.AkahuUserToken.String), nil
}
