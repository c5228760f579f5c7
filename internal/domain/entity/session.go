package entity

import "time"

// SessionStatus is the lifecycle state of a sync session.
type SessionStatus string

const (
	// SessionWaiting means the handshake has started and the loyalty platform
	// has not yet confirmed the pairing.
	SessionWaiting SessionStatus = "waiting"
	// SessionLinked means the loyalty platform confirmed the pairing.
	SessionLinked SessionStatus = "linked"
	// SessionExpired is derived at read time when ExpiresAt has passed; it is
	// never written to the store.
	SessionExpired SessionStatus = "expired"
)

// SyncSession is the short-lived handshake state used to pair an external
// identity with a loyalty account without the user re-entering both
// identities in the same context.
type SyncSession struct {
	SyncID     string        // Opaque token, unique. Time component plus crypto-random suffix.
	ExternalID string        // Messaging-platform user id that started the handshake.
	Status     SessionStatus
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// EffectiveStatus applies the lazy expiry predicate: a waiting session whose
// deadline has passed reports as expired even though the stored status still
// reads waiting. There is no background reaper.
func (s *SyncSession) EffectiveStatus(now time.Time) SessionStatus {
	if s.Status == SessionWaiting && now.After(s.ExpiresAt) {
		return SessionExpired
	}

	return s.Status
}

// Usable reports whether the session can still complete a link handshake.
func (s *SyncSession) Usable(now time.Time) bool {
	return s.EffectiveStatus(now) == SessionWaiting
}
