package postgres

import (
	"context"

	"loyaltysync/config"
	"loyaltysync/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements repository.TransactionManager on top of
// gorm's transaction support.
type gormTransactionManager struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB, cfg *config.Config) repository.TransactionManager {
	return &gormTransactionManager{db: db, cfg: cfg}
}

// Execute runs fn inside one store transaction. The factory hands fn
// repositories bound to that transaction; any error rolls everything back.
func (manager *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	err := manager.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositoryFactory{tx: tx, cfg: manager.cfg})
	})
	if err != nil {
		return errors.Wrap(err, "transaction execute failed")
	}

	return nil
}

// gormRepositoryFactory creates repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx  *gorm.DB
	cfg *config.Config
}

func (f *gormRepositoryFactory) LinkRepo() repository.LinkRepository {
	return NewLinkRepository(f.tx, f.cfg)
}

func (f *gormRepositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.tx, f.cfg)
}

func (f *gormRepositoryFactory) IdentityRepo() repository.IdentityRepository {
	return NewIdentityRepository(f.tx, f.cfg)
}
