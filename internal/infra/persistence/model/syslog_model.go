package model

import "time"

// SystemLogModel mirrors the append-only 'system_logs' audit table.
type SystemLogModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Level     string `gorm:"type:varchar(16);not null"`
	Source    string `gorm:"type:varchar(64);not null"`
	Message   string `gorm:"type:text;not null"`
	Data      string `gorm:"type:jsonb"`
	UserID    string `gorm:"type:varchar(64);index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SystemLogModel) TableName() string {
	return "system_logs"
}
