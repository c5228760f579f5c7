package model

import "time"

// SyncSessionModel mirrors the 'sync_sessions' table. Rows are superseded in
// place on re-registration of the same sync id; expiry is evaluated by
// readers, never persisted.
type SyncSessionModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	SyncID     string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	ExternalID string    `gorm:"type:varchar(64);not null;index"`
	Status     string    `gorm:"type:varchar(16);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (SyncSessionModel) TableName() string {
	return "sync_sessions"
}
