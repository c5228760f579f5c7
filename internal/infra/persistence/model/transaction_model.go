package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionModel mirrors the append-only 'transactions' table. Rows are
// written by the external ledger producer; this service only reads them. The
// composite index serves the username + created-at page and count queries.
type TransactionModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	TransactionID   string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExternalID      *string         `gorm:"type:varchar(64);index"`
	LoyaltyUsername *string         `gorm:"type:varchar(128);index:idx_transactions_username_created"`
	Type            string          `gorm:"type:varchar(32);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	BalanceBefore   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Description     string          `gorm:"type:text"`
	Source          string          `gorm:"type:varchar(64)"`
	Details         string          `gorm:"type:jsonb"`
	ProcessedAt     time.Time
	CreatedAt       time.Time `gorm:"index:idx_transactions_username_created"`
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
