// Package audit persists best-effort audit events to the system log table.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"loyaltysync/internal/domain/entity"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/domain/service"
)

type recorder struct {
	repo   repository.SystemLogRepository
	logger *slog.Logger
}

// NewRecorder is the constructor for the system-log backed AuditRecorder.
func NewRecorder(repo repository.SystemLogRepository, logger *slog.Logger) service.AuditRecorder {
	return &recorder{repo: repo, logger: logger}
}

// Record appends the event and swallows any failure after one warning log.
// Audit writes never propagate errors into the operation that emitted them.
func (r *recorder) Record(ctx context.Context, event *service.AuditEvent) {
	var data string
	if len(event.Data) > 0 {
		raw, err := json.Marshal(event.Data)
		if err != nil {
			r.logger.WarnContext(ctx, "audit payload marshal failed",
				slog.String("source", event.Source),
				slog.Any("error", err))
		} else {
			data = string(raw)
		}
	}

	entry := &entity.SystemLogEntry{
		Level:   event.Level,
		Source:  event.Source,
		Message: event.Message,
		Data:    data,
		UserID:  event.UserID,
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "audit append failed",
			slog.String("source", event.Source),
			slog.String("message", event.Message),
			slog.Any("error", err))
	}
}
