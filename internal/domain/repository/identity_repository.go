package repository

import (
	"context"

	"loyaltysync/internal/domain/entity"
)

// IdentityRepository persists external-identity profile attributes.
type IdentityRepository interface {
	// UpsertIdentity overwrites all provided attributes on conflict with the
	// identity id (last-write-wins, no field-level merge).
	UpsertIdentity(ctx context.Context, identity *entity.ExternalIdentity) error
}
