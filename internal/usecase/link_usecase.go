// Package usecase defines the application-facing contracts and their
// input/output shapes. The delivery layer depends on these interfaces only.
package usecase

import (
	"context"
	"time"
)

// CheckLinkInput carries the identifiers supplied by the transport. Exactly
// one is required; when both are present the external id takes priority.
type CheckLinkInput struct {
	ExternalID string `json:"external_id,omitempty"`
	Username   string `json:"username,omitempty"`
}

// LinkSnapshot is the caller-visible view of an active pairing. Monetary
// fields are converted to floating point here, at the response boundary only.
type LinkSnapshot struct {
	AccountID   string    `json:"account_id"`
	ExternalID  string    `json:"external_id,omitempty"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Points      int       `json:"points"`
	Tier        string    `json:"tier"`
	Balance     float64   `json:"balance"`
	LinkedAt    time.Time `json:"linked_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
}

// CheckLinkOutput reports whether the identity is linked. Data is nil when no
// active link exists; that case is a successful answer, not an error.
type CheckLinkOutput struct {
	IsLinked bool          `json:"is_linked"`
	Data     *LinkSnapshot `json:"data"`
}

// LinkUsecase is the link-registry entry point.
type LinkUsecase interface {
	CheckLink(ctx context.Context, input *CheckLinkInput) (*CheckLinkOutput, error)
}
