package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is a landlord account. Identity and credential management live
// in the external auth layer; the check engine only reads the email
// address and the stored aggregator tokens.
type User struct {
	ID             uuid.UUID
	Email          string
	AkahuAppToken  sql.NullString
	AkahuUserToken sql.NullString
	CreatedAt      time.Time
}
