// internal/domain/bank/bank.go
package bank

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Distinguishable aggregator failure kinds. Infrastructure clients wrap
// these so callers can branch with errors.Is while still seeing detail.
var (
	ErrNotConfigured = errors.New("bank aggregator not configured for user")
	ErrUnauthorized  = errors.New("bank aggregator rejected credentials")
	ErrForbidden     = errors.New("bank aggregator access forbidden")
	ErrUnreachable   = errors.New("bank aggregator unreachable")
)

// Account is a bank account linked through the aggregator.
type Account struct {
	ID   string
	Name string
	Type string
}

// Transaction is a read-only bank transaction from the aggregator.
// Amount is positive for incoming funds.
type Transaction struct {
	ID          string
	AccountID   string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// Client gives read access to one user's linked accounts and their
// transactions.
type Client interface {
	Accounts(ctx context.Context) ([]Account, error)
	Transactions(ctx context.Context, accountID string, start, end time.Time) ([]Transaction, error)
}

// ClientFactory builds a Client from a user's stored aggregator
// credentials. Returns ErrNotConfigured when the user has none.
type ClientFactory interface {
	ClientForUser(ctx context.Context, userID uuid.UUID) (Client, error)
}
