package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry produced by the external
// ledger-writing process. This system only reads these rows; it never mutates
// or deletes them.
type Transaction struct {
	ID              int64
	TransactionID   string          // Producer-assigned id, unique.
	ExternalID      *string         // Messaging-platform user id, when known.
	LoyaltyUsername *string         // Loyalty-platform username, when known.
	Type            string          // Producer-defined type, e.g. "purchase", "refund", "bonus".
	Amount          decimal.Decimal
	BalanceBefore   decimal.Decimal
	BalanceAfter    decimal.Decimal
	Description     string
	Source          string          // Originating system of the entry.
	Details         string          // Free-form JSON payload from the producer.
	ProcessedAt     time.Time
	CreatedAt       time.Time
}

// TransactionFilter selects ledger entries for one resolved loyalty account.
// Limit and Offset are normalized by the query engine, not here.
type TransactionFilter struct {
	LoyaltyUsername string
	Type            string     // Empty means all types.
	DateFrom        *time.Time // Inclusive lower bound on CreatedAt.
	DateTo          *time.Time // Inclusive upper bound on CreatedAt.
	Limit           int
	Offset          int
}
