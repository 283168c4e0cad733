package property

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is a property's rent recurrence rule.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
)

// Property represents a rental property owned by a landlord (user).
// RentDueDay is 1-31 for MONTHLY and 1-7 (1=Sunday..7=Saturday) for
// WEEKLY/FORTNIGHTLY. KeywordMatch is the case-insensitive substring
// searched for in bank transaction descriptions.
type Property struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Address              string
	TenantName           string
	TenantEmail          string
	RentDueDay           int
	RentFrequency        Frequency
	KeywordMatch         string
	NotifyTenantOnMissed bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
