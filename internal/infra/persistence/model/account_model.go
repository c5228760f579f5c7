package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyAccountModel mirrors the 'loyalty_accounts' table: cached snapshots
// of accounts owned by the external loyalty platform. Monetary columns are
// NUMERIC so filtering and storage stay decimal-precise.
type LoyaltyAccountModel struct {
	Username  string          `gorm:"type:varchar(128);primaryKey"`
	FirstName string          `gorm:"type:varchar(128)"`
	LastName  string          `gorm:"type:varchar(128)"`
	Phone     string          `gorm:"type:varchar(32)"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Tier      string          `gorm:"type:varchar(32)"`
	Points    int             `gorm:"not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LoyaltyAccountModel) TableName() string {
	return "loyalty_accounts"
}
