package entity

import "time"

// SystemLogEntry is a best-effort, append-only audit record. Writes must never
// abort the operation they describe.
type SystemLogEntry struct {
	ID        int64
	Level     string    // "info", "warn", "error".
	Source    string    // Emitting component, e.g. "sync", "link".
	Message   string
	Data      string    // Free-form JSON payload.
	UserID    string    // Messaging-platform user id, when the event concerns one.
	CreatedAt time.Time
}
