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

// linkRepository implements the repository.LinkRepository interface using GORM.
type linkRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewLinkRepository is the constructor for linkRepository.
func NewLinkRepository(db *gorm.DB, cfg *config.Config) repository.LinkRepository {
	return &linkRepository{
		db:      db,
		timeout: queryTimeout(cfg),
	}
}

// FindActiveLinkByExternalID returns the most recently linked active pairing
// for the identity, with both snapshot sides loaded.
func (repo *linkRepository) FindActiveLinkByExternalID(ctx context.Context, externalID string) (*entity.AccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var linkM model.AccountLinkModel
	err := repo.db.WithContext(ctx).
		Preload("Identity").
		Preload("Account").
		Where("external_id = ? AND is_active = ?", externalID, true).
		Order("linked_at DESC").
		First(&linkM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLinkNotFound
		}

		return nil, errors.Wrap(err, "failed to find link by external id")
	}

	return toLinkDomain(&linkM), nil
}

// FindAccountByUsername looks up from the loyalty side. An unknown username is
// ErrAccountNotFound; a known account without an active link comes back with a
// nil identity side so callers can tell the two cases apart.
func (repo *linkRepository) FindAccountByUsername(ctx context.Context, username string) (*entity.AccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var accountM model.LoyaltyAccountModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find loyalty account")
	}

	var linkM model.AccountLinkModel
	err = repo.db.WithContext(ctx).
		Preload("Identity").
		Where("loyalty_username = ? AND is_active = ?", username, true).
		Order("linked_at DESC").
		First(&linkM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.AccountLink{
				LoyaltyUsername: username,
				IsActive:        false,
				Account:         toAccountDomain(&accountM),
			}, nil
		}

		return nil, errors.Wrap(err, "failed to find link by username")
	}

	link := toLinkDomain(&linkM)
	link.Account = toAccountDomain(&accountM)

	return link, nil
}

// UpsertLink inserts the pairing as a single statement: on conflict with the
// (external_id, loyalty_username) pair it reactivates the row and refreshes
// method and linked-at. No read precedes the write, so concurrent calls for
// the same pair cannot race into duplicates.
func (repo *linkRepository) UpsertLink(ctx context.Context, externalID, username string, method entity.LinkMethod) (*entity.AccountLink, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	now := time.Now()
	linkM := model.AccountLinkModel{
		ExternalID:      externalID,
		LoyaltyUsername: username,
		IsActive:        true,
		LinkMethod:      string(method),
		LinkedAt:        now,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}, {Name: "loyalty_username"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_active":   true,
				"link_method": string(method),
				"linked_at":   now,
				"updated_at":  now,
			}),
		}).
		Create(&linkM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to upsert account link")
	}

	// Snapshot sides are not loaded here; confirmation callers only need the
	// pairing fields.
	return toLinkDomain(&linkM), nil
}

// --- Mapper Functions ---

// toLinkDomain converts a GORM AccountLinkModel to a domain AccountLink entity.
func toLinkDomain(data *model.AccountLinkModel) *entity.AccountLink {
	if data == nil {
		return nil
	}

	return &entity.AccountLink{
		ID:              data.ID,
		ExternalID:      data.ExternalID,
		LoyaltyUsername: data.LoyaltyUsername,
		IsActive:        data.IsActive,
		LinkMethod:      entity.LinkMethod(data.LinkMethod),
		LinkedAt:        data.LinkedAt,
		Identity:        toIdentityDomain(data.Identity),
		Account:         toAccountDomain(data.Account),
	}
}

// toIdentityDomain converts a GORM ExternalIdentityModel to a domain ExternalIdentity entity.
func toIdentityDomain(data *model.ExternalIdentityModel) *entity.ExternalIdentity {
	if data == nil {
		return nil
	}

	return &entity.ExternalIdentity{
		ID:          data.ID,
		DisplayName: data.DisplayName,
		AvatarURL:   data.AvatarURL,
		Locale:      data.Locale,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toAccountDomain converts a GORM LoyaltyAccountModel to a domain LoyaltyAccount entity.
func toAccountDomain(data *model.LoyaltyAccountModel) *entity.LoyaltyAccount {
	if data == nil {
		return nil
	}

	return &entity.LoyaltyAccount{
		Username:  data.Username,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Balance:   data.Balance,
		Tier:      data.Tier,
		Points:    data.Points,
		IsActive:  data.IsActive,
		UpdatedAt: data.UpdatedAt,
	}
}
