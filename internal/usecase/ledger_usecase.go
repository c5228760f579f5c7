package usecase

import (
	"context"
	"time"
)

// ListTransactionsInput is the transport-level ledger query. At least one of
// ExternalID / Username must resolve to a known account.
type ListTransactionsInput struct {
	ExternalID string     `json:"external_id,omitempty" query:"external_id"`
	Username   string     `json:"username,omitempty" query:"username"`
	Type       string     `json:"type,omitempty" query:"type"`
	DateFrom   *time.Time `json:"date_from,omitempty" query:"date_from"`
	DateTo     *time.Time `json:"date_to,omitempty" query:"date_to"`
	Limit      int        `json:"limit,omitempty" query:"limit"`
	Offset     int        `json:"offset,omitempty" query:"offset"`
}

// TransactionDTO is one ledger entry shaped for the response. Decimal fields
// become floats here and nowhere earlier.
type TransactionDTO struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	BalanceBefore float64   `json:"balance_before"`
	BalanceAfter  float64   `json:"balance_after"`
	Description   string    `json:"description,omitempty"`
	Source        string    `json:"source,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Pagination reports page arithmetic. HasMore is offset+limit < total; total
// comes from an independent count query over the same predicate.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// AccountSummary names the account a page belongs to.
type AccountSummary struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// ListTransactionsOutput is one page of ledger history plus its metadata.
type ListTransactionsOutput struct {
	Transactions []*TransactionDTO `json:"transactions"`
	Pagination   *Pagination       `json:"pagination"`
	Account      *AccountSummary   `json:"account"`
}

// LedgerUsecase is the filterable, paginated transaction query engine.
type LedgerUsecase interface {
	ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error)
}
