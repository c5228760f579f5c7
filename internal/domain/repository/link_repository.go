// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"loyaltysync/internal/domain/entity"
)

// ErrLinkNotFound is returned when an identity has no active link.
var ErrLinkNotFound = errors.New("account link not found")

// ErrAccountNotFound is returned when a loyalty username is unknown entirely,
// as opposed to known but unlinked.
var ErrAccountNotFound = errors.New("loyalty account not found")

// LinkRepository owns the pairing between external identities and loyalty
// accounts. At most one row exists per (external id, loyalty username) pair;
// the store's uniqueness constraint enforces this, never a read-then-write.
type LinkRepository interface {
	// FindActiveLinkByExternalID returns the most recently linked active row
	// for the identity, joined with the loyalty-account snapshot.
	// Returns ErrLinkNotFound when no active link exists.
	FindActiveLinkByExternalID(ctx context.Context, externalID string) (*entity.AccountLink, error)

	// FindAccountByUsername looks up from the loyalty side. When the account
	// exists but carries no active link, the returned AccountLink has a nil
	// Identity and IsActive false, distinguishing "known account, not linked"
	// from ErrAccountNotFound.
	FindAccountByUsername(ctx context.Context, username string) (*entity.AccountLink, error)

	// UpsertLink inserts the pairing or, on conflict with the existing pair,
	// reactivates it and refreshes link method and linked-at. Idempotent.
	UpsertLink(ctx context.Context, externalID, username string, method entity.LinkMethod) (*entity.AccountLink, error)
}
