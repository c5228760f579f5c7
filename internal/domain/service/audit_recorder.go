// Package service declares infrastructure-facing contracts consumed by the
// application layer.
package service

import "context"

// AuditRecorder is the best-effort audit side channel. Implementations swallow
// their own failures after a single log emission; a Record call never fails
// the operation that triggered it.
type AuditRecorder interface {
	Record(ctx context.Context, event *AuditEvent)
}

// AuditEvent describes one auditable occurrence.
type AuditEvent struct {
	Level   string         `json:"level"`   // "info", "warn", "error".
	Source  string         `json:"source"`  // Emitting component, e.g. "sync", "link".
	Message string         `json:"message"`
	UserID  string         `json:"user_id,omitempty"` // Messaging-platform user id, when relevant.
	Data    map[string]any `json:"data,omitempty"`
}
