package impl

import (
	"context"
	"log/slog"

	"loyaltysync/internal/domain/entity"
	domainerrors "loyaltysync/internal/domain/errors"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/errors"
	"loyaltysync/internal/usecase"

	"go.uber.org/fx"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ledgerService implements the LedgerUsecase interface.
type ledgerService struct {
	linkRepo   repository.LinkRepository
	ledgerRepo repository.LedgerRepository
	logger     *slog.Logger
}

// LedgerServiceParams holds dependencies for ledgerService, injected by Fx.
type LedgerServiceParams struct {
	fx.In

	LinkRepo   repository.LinkRepository
	LedgerRepo repository.LedgerRepository
	Logger     *slog.Logger
}

// NewLedgerService is the constructor for ledgerService.
func NewLedgerService(params LedgerServiceParams) usecase.LedgerUsecase {
	return &ledgerService{
		linkRepo:   params.LinkRepo,
		ledgerRepo: params.LedgerRepo,
		logger:     params.Logger,
	}
}

// ListTransactions resolves the account first, then runs the page query and an
// independent count over the same predicate. The two queries are not
// snapshotted together; under concurrent ledger writes they may disagree.
func (srv *ledgerService) ListTransactions(ctx context.Context, input *usecase.ListTransactionsInput) (*usecase.ListTransactionsOutput, error) {
	if input == nil || (input.ExternalID == "" && input.Username == "") {
		return nil, domainerrors.ErrValidation.WrapMessage("either external_id or username is required")
	}

	account, err := srv.resolveAccount(ctx, input)
	if err != nil {
		return nil, err
	}

	limit, offset := normalizePage(input.Limit, input.Offset)
	filter := &entity.TransactionFilter{
		LoyaltyUsername: account.Username,
		Type:            input.Type,
		DateFrom:        input.DateFrom,
		DateTo:          input.DateTo,
		Limit:           limit,
		Offset:          offset,
	}

	items, err := srv.ledgerRepo.ListTransactions(ctx, filter)
	if err != nil {
		srv.logger.Error("ledger page query failed", slog.String("username", account.Username), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to list transactions")
	}

	total, err := srv.ledgerRepo.CountTransactions(ctx, filter)
	if err != nil {
		srv.logger.Error("ledger count query failed", slog.String("username", account.Username), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to count transactions")
	}

	transactions := make([]*usecase.TransactionDTO, 0, len(items))
	for _, tx := range items {
		transactions = append(transactions, toTransactionDTO(tx))
	}

	return &usecase.ListTransactionsOutput{
		Transactions: transactions,
		Pagination: &usecase.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+limit) < total,
		},
		Account: &usecase.AccountSummary{
			Username:    account.Username,
			DisplayName: account.DisplayName(),
		},
	}, nil
}

// resolveAccount maps the supplied identifiers onto a known loyalty account,
// external id first. Unresolvable identifiers fail before any ledger query.
func (srv *ledgerService) resolveAccount(ctx context.Context, input *usecase.ListTransactionsInput) (*entity.LoyaltyAccount, error) {
	if input.ExternalID != "" {
		link, err := srv.linkRepo.FindActiveLinkByExternalID(ctx, input.ExternalID)
		if err == nil && link.Account != nil {
			return link.Account, nil
		}
		if err != nil && !errors.Is(err, repository.ErrLinkNotFound) {
			return nil, classifyStoreError(err, "failed to resolve account by external id")
		}
		if input.Username == "" {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("external id has no active link")
		}
	}

	link, err := srv.linkRepo.FindAccountByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("unknown loyalty username")
	}
	if err != nil {
		return nil, classifyStoreError(err, "failed to resolve account by username")
	}
	if link.Account == nil {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("unknown loyalty username")
	}

	return link.Account, nil
}

// normalizePage clamps the page window: limit defaults to 10 when zero or
// negative and caps at 100; offset floors at 0.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// toTransactionDTO shapes one ledger entry for the response, converting
// decimals to floating point at this boundary only.
func toTransactionDTO(tx *entity.Transaction) *usecase.TransactionDTO {
	return &usecase.TransactionDTO{
		TransactionID: tx.TransactionID,
		Type:          tx.Type,
		Amount:        tx.Amount.InexactFloat64(),
		BalanceBefore: tx.BalanceBefore.InexactFloat64(),
		BalanceAfter:  tx.BalanceAfter.InexactFloat64(),
		Description:   tx.Description,
		Source:        tx.Source,
		ProcessedAt:   tx.ProcessedAt,
		CreatedAt:     tx.CreatedAt,
	}
}
