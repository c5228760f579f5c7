package repository

import (
	"context"

	"loyaltysync/internal/domain/entity"
)

// SystemLogRepository appends audit records. Append failures are the caller's
// to swallow; this interface makes no best-effort promise itself.
type SystemLogRepository interface {
	Append(ctx context.Context, entry *entity.SystemLogEntry) error
}
