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
)

// systemLogRepository implements the repository.SystemLogRepository interface using GORM.
type systemLogRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewSystemLogRepository is the constructor for systemLogRepository.
func NewSystemLogRepository(db *gorm.DB, cfg *config.Config) repository.SystemLogRepository {
	return &systemLogRepository{
		db:      db,
		timeout: queryTimeout(cfg),
	}
}

// Append inserts one audit record.
func (repo *systemLogRepository) Append(ctx context.Context, entry *entity.SystemLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	logM := model.SystemLogModel{
		Level:   entry.Level,
		Source:  entry.Source,
		Message: entry.Message,
		Data:    entry.Data,
		UserID:  entry.UserID,
	}
	if err := repo.db.WithContext(ctx).Create(&logM).Error; err != nil {
		return errors.Wrap(err, "failed to append system log")
	}

	return nil
}
