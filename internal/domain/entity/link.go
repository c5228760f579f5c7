package entity

import "time"

// LinkMethod records how a pairing was established.
type LinkMethod string

const (
	// LinkMethodSync means the pairing was completed through a sync-session handshake.
	LinkMethodSync LinkMethod = "sync"
	// LinkMethodManual means an operator created the pairing directly.
	LinkMethodManual LinkMethod = "manual"
)

// AccountLink is an active pairing between one external identity and one
// loyalty account. For a given (ExternalID, LoyaltyUsername) pair at most one
// row exists; IsActive may be toggled but the pair is never duplicated.
type AccountLink struct {
	ID              int64
	ExternalID      string     // Messaging-platform user id.
	LoyaltyUsername string     // Loyalty-platform username.
	IsActive        bool
	LinkMethod      LinkMethod
	LinkedAt        time.Time  // Refreshed on every re-link; most recent wins on lookup.

	// Joined snapshots, populated by lookups. Identity is nil when the loyalty
	// account is known but not linked to anyone.
	Identity *ExternalIdentity
	Account  *LoyaltyAccount
}
