package postgres

import (
	"context"
	"time"

	"loyaltysync/config"
	"loyaltysync/internal/domain/entity"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// identityRepository implements the repository.IdentityRepository interface using GORM.
type identityRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB, cfg *config.Config) repository.IdentityRepository {
	return &identityRepository{
		db:      db,
		timeout: queryTimeout(cfg),
	}
}

// UpsertIdentity overwrites the cached profile attributes. Last write wins;
// there is no field-level merge with the stored row.
func (repo *identityRepository) UpsertIdentity(ctx context.Context, identity *entity.ExternalIdentity) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	identityM := model.ExternalIdentityModel{
		ID:          identity.ID,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
		Locale:      identity.Locale,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "avatar_url", "locale", "updated_at"}),
		}).
		Create(&identityM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert external identity")
	}

	return nil
}
