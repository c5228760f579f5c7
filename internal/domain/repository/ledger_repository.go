package repository

import (
	"context"

	"loyaltysync/internal/domain/entity"
)

// LedgerRepository reads the append-only transaction history. Entries are
// produced by an external process; nothing here mutates them.
type LedgerRepository interface {
	// ListTransactions returns one page of entries matching the filter,
	// ordered by created-at descending with insertion order breaking ties.
	ListTransactions(ctx context.Context, filter *entity.TransactionFilter) ([]*entity.Transaction, error)

	// CountTransactions runs an independent count built from the same
	// predicate, excluding limit and offset. Count and page are not
	// snapshotted together; under concurrent writes they may disagree.
	CountTransactions(ctx context.Context, filter *entity.TransactionFilter) (int64, error)
}
