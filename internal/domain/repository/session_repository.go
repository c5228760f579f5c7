package repository

import (
	"context"
	"errors"

	"loyaltysync/internal/domain/entity"
)

// ErrSessionNotFound is returned when a sync token does not resolve to a row.
var ErrSessionNotFound = errors.New("sync session not found")

// SessionRepository stores the short-lived handshake state. Expiry is a pure
// read-time predicate applied by callers; rows are never reaped here.
type SessionRepository interface {
	// UpsertSession inserts the session or, on conflict with an existing
	// sync id, overwrites status and expiry. This makes session registration
	// idempotent under retry.
	UpsertSession(ctx context.Context, session *entity.SyncSession) error

	// FindBySyncID returns the stored row as-is, without applying the expiry
	// predicate.
	FindBySyncID(ctx context.Context, syncID string) (*entity.SyncSession, error)

	// MarkLinked transitions a session to linked once the loyalty platform
	// confirms the pairing. Returns ErrSessionNotFound when the token is unknown.
	MarkLinked(ctx context.Context, syncID string) error
}
