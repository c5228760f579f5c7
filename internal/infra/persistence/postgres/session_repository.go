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

// sessionRepository implements the repository.SessionRepository interface
// using GORM. Expired rows stay in the table; expiry is applied by readers.
type sessionRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB, cfg *config.Config) repository.SessionRepository {
	return &sessionRepository{
		db:      db,
		timeout: queryTimeout(cfg),
	}
}

// UpsertSession inserts the handshake row, refreshing status and deadline on
// conflict with an existing sync id so retried registrations converge on one row.
func (repo *sessionRepository) UpsertSession(ctx context.Context, session *entity.SyncSession) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	sessionM := model.SyncSessionModel{
		SyncID:     session.SyncID,
		ExternalID: session.ExternalID,
		Status:     string(session.Status),
		ExpiresAt:  session.ExpiresAt,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sync_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"external_id", "status", "expires_at", "updated_at"}),
		}).
		Create(&sessionM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert sync session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindBySyncID returns the stored row without evaluating expiry.
func (repo *sessionRepository) FindBySyncID(ctx context.Context, syncID string) (*entity.SyncSession, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var sessionM model.SyncSessionModel
	err := repo.db.WithContext(ctx).
		Where("sync_id = ?", syncID).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find sync session")
	}

	return toSessionDomain(&sessionM), nil
}

// MarkLinked records that the loyalty platform confirmed the handshake.
func (repo *sessionRepository) MarkLinked(ctx context.Context, syncID string) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	result := repo.db.WithContext(ctx).
		Model(&model.SyncSessionModel{}).
		Where("sync_id = ?", syncID).
		Update("status", string(entity.SessionLinked))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark sync session linked")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// toSessionDomain converts a GORM SyncSessionModel to a domain SyncSession entity.
func toSessionDomain(data *model.SyncSessionModel) *entity.SyncSession {
	if data == nil {
		return nil
	}

	return &entity.SyncSession{
		SyncID:     data.SyncID,
		ExternalID: data.ExternalID,
		Status:     entity.SessionStatus(data.Status),
		ExpiresAt:  data.ExpiresAt,
		CreatedAt:  data.CreatedAt,
	}
}
