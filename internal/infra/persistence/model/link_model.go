package model

import "time"

// AccountLinkModel mirrors the 'account_links' table. The composite unique
// index on (external_id, loyalty_username) is what the upsert conflicts
// against; the pair is never duplicated, only toggled.
type AccountLinkModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	ExternalID      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_account_links_pair"`
	LoyaltyUsername string `gorm:"type:varchar(128);not null;uniqueIndex:idx_account_links_pair"`
	IsActive        bool   `gorm:"not null;default:true"`
	LinkMethod      string `gorm:"type:varchar(32);not null"`
	LinkedAt        time.Time `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Identity *ExternalIdentityModel `gorm:"foreignKey:ExternalID;references:ID"`
	Account  *LoyaltyAccountModel   `gorm:"foreignKey:LoyaltyUsername;references:Username"`
}

// TableName explicitly sets the table name for GORM.
func (AccountLinkModel) TableName() string {
	return "account_links"
}
