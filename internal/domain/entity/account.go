package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyAccount is a cached snapshot of an account owned by the external
// loyalty platform. The platform is the source of truth; this system only
// reads and upserts copies of these fields.
type LoyaltyAccount struct {
	Username  string          // Loyalty-platform username, unique.
	FirstName string          // Legal name parts as held by the platform.
	LastName  string
	Phone     string          // Contact phone, may be empty.
	Balance   decimal.Decimal // Monetary balance, decimal-precise at rest.
	Tier      string          // Loyalty tier label, e.g. "bronze", "gold".
	Points    int             // Accumulated loyalty points.
	IsActive  bool            // Whether the platform reports the account as active.
	UpdatedAt time.Time       // Timestamp of the last snapshot refresh.
}

// DisplayName returns the legal name joined for presentation, falling back to
// the username when no name parts are cached.
func (a *LoyaltyAccount) DisplayName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	default:
		return a.Username
	}
}
