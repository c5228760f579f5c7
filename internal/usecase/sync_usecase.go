package usecase

import (
	"context"
	"time"
)

// ProfileAttributes are the external-identity profile fields a caller may
// supply alongside a handshake. All provided fields overwrite stored ones.
type ProfileAttributes struct {
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// RegisterSyncSessionInput starts a link handshake for one external identity.
type RegisterSyncSessionInput struct {
	ExternalID string             `json:"external_id" validate:"required"`
	Profile    *ProfileAttributes `json:"profile,omitempty"`
}

// RegisterSyncSessionOutput hands the caller everything needed to complete the
// handshake out-of-band. QRCodePNG is base64-encoded and present only when QR
// generation is configured.
type RegisterSyncSessionOutput struct {
	SyncID    string    `json:"sync_id"`
	ExpiresAt time.Time `json:"expires_at"`
	LoginURL  string    `json:"login_url"`
	QRCodePNG string    `json:"qr_code_png,omitempty"`
}

// SessionStatusOutput reports handshake state with the expiry predicate applied.
type SessionStatusOutput struct {
	SyncID     string    `json:"sync_id"`
	ExternalID string    `json:"external_id"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConfirmLinkInput is the loyalty platform's confirmation callback: the sync
// token it received out-of-band plus the account that authenticated.
type ConfirmLinkInput struct {
	SyncID   string `json:"sync_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// ConfirmLinkOutput acknowledges a completed pairing.
type ConfirmLinkOutput struct {
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	LinkedAt   time.Time `json:"linked_at"`
}

// SyncUsecase is the sync-session state machine: register a handshake, poll
// its status, and complete it when the loyalty platform confirms.
type SyncUsecase interface {
	RegisterSyncSession(ctx context.Context, input *RegisterSyncSessionInput) (*RegisterSyncSessionOutput, error)
	GetSession(ctx context.Context, syncID string) (*SessionStatusOutput, error)
	ConfirmLink(ctx context.Context, input *ConfirmLinkInput) (*ConfirmLinkOutput, error)
}
