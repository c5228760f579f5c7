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

// ledgerRepository implements the repository.LedgerRepository interface using
// GORM. The transactions table is append-only; this repository never writes.
type ledgerRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewLedgerRepository is the constructor for ledgerRepository.
func NewLedgerRepository(db *gorm.DB, cfg *config.Config) repository.LedgerRepository {
	return &ledgerRepository{
		db:      db,
		timeout: queryTimeout(cfg),
	}
}

// ListTransactions returns one page ordered newest first, with insertion order
// breaking created-at ties so paging stays stable.
func (repo *ledgerRepository) ListTransactions(ctx context.Context, filter *entity.TransactionFilter) ([]*entity.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var txModels []*model.TransactionModel
	err := repo.applyFilter(repo.db.WithContext(ctx), filter).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&txModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txs := make([]*entity.Transaction, 0, len(txModels))
	for _, txM := range txModels {
		txs = append(txs, toTransactionDomain(txM))
	}

	return txs, nil
}

// CountTransactions counts rows under the same predicate as ListTransactions,
// ignoring limit and offset. The count runs as its own statement, so it may
// drift from the page under concurrent ledger writes.
func (repo *ledgerRepository) CountTransactions(ctx context.Context, filter *entity.TransactionFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var total int64
	err := repo.applyFilter(repo.db.WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Count(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count transactions")
	}

	return total, nil
}

// applyFilter builds the shared predicate. Date bounds are inclusive on both
// ends.
func (repo *ledgerRepository) applyFilter(tx *gorm.DB, filter *entity.TransactionFilter) *gorm.DB {
	tx = tx.Where("loyalty_username = ?", filter.LoyaltyUsername)
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("created_at <= ?", *filter.DateTo)
	}

	return tx
}

// toTransactionDomain converts a GORM TransactionModel to a domain Transaction entity.
func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		ID:              data.ID,
		TransactionID:   data.TransactionID,
		ExternalID:      data.ExternalID,
		LoyaltyUsername: data.LoyaltyUsername,
		Type:            data.Type,
		Amount:          data.Amount,
		BalanceBefore:   data.BalanceBefore,
		BalanceAfter:    data.BalanceAfter,
		Description:     data.Description,
		Source:          data.Source,
		Details:         data.Details,
		ProcessedAt:     data.ProcessedAt,
		CreatedAt:       data.CreatedAt,
	}
}
