// Package model holds the GORM persistence models mirroring the PostgreSQL schema.
package model

import "time"

// ExternalIdentityModel mirrors the 'external_identities' table. The primary
// key is the messaging-platform user id, assigned externally.
type ExternalIdentityModel struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	DisplayName string `gorm:"type:varchar(255)"`
	AvatarURL   string `gorm:"type:text"`
	Locale      string `gorm:"type:varchar(16)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExternalIdentityModel) TableName() string {
	return "external_identities"
}
