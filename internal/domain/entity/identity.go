// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// ExternalIdentity is the messaging-platform side of a pairing: the chat user
// driving the integration. The platform's own user id is the primary key; it
// is assigned externally and never generated here.
type ExternalIdentity struct {
	ID          string    // Messaging-platform user id, unique.
	DisplayName string    // Display name as reported by the platform.
	AvatarURL   string    // Profile picture URL, may be empty.
	Locale      string    // BCP-47 language tag reported by the platform.
	UpdatedAt   time.Time // Timestamp of the last profile sync.
}
