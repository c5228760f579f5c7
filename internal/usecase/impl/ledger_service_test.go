package impl

import (
	"context"
	"testing"
	"time"

	"loyaltysync/internal/domain/entity"
	domainerrors "loyaltysync/internal/domain/errors"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedgerServiceForTest(linkRepo *MockLinkRepository, ledgerRepo *MockLedgerRepository) usecase.LedgerUsecase {
	return NewLedgerService(LedgerServiceParams{
		LinkRepo:   linkRepo,
		LedgerRepo: ledgerRepo,
		Logger:     newDiscardLogger(),
	})
}

func linkedAccount(username string) *entity.AccountLink {
	return &entity.AccountLink{
		ExternalID:      "ext-1",
		LoyaltyUsername: username,
		IsActive:        true,
		Identity:        &entity.ExternalIdentity{ID: "ext-1"},
		Account: &entity.LoyaltyAccount{
			Username:  username,
			FirstName: "Dana",
			LastName:  "Scully",
		},
	}
}

func someTransactions(n int) []*entity.Transaction {
	txs := make([]*entity.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, &entity.Transaction{
			TransactionID: "tx-" + string(rune('a'+i)),
			Type:          "purchase",
			Amount:        decimal.RequireFromString("9.99"),
			BalanceBefore: decimal.RequireFromString("50.00"),
			BalanceAfter:  decimal.RequireFromString("40.01"),
			CreatedAt:     time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}

	return txs
}

func TestLedgerService_ListTransactions_MissingIdentifiers(t *testing.T) {
	svc := newLedgerServiceForTest(new(MockLinkRepository), new(MockLedgerRepository))

	_, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLedgerService_ListTransactions_DefaultPage(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	ledgerRepo := new(MockLedgerRepository)
	svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-1").
		Return(linkedAccount("dana"), nil)
	ledgerRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f *entity.TransactionFilter) bool {
		return f.LoyaltyUsername == "dana" && f.Limit == 10 && f.Offset == 0
	})).Return(someTransactions(7), nil)
	ledgerRepo.On("CountTransactions", mock.Anything, mock.Anything).Return(int64(7), nil)

	out, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{ExternalID: "ext-1"})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 7)
	assert.Equal(t, int64(7), out.Pagination.Total)
	assert.Equal(t, 10, out.Pagination.Limit)
	assert.Equal(t, 0, out.Pagination.Offset)
	assert.False(t, out.Pagination.HasMore)
	assert.Equal(t, "dana", out.Account.Username)
	assert.Equal(t, "Dana Scully", out.Account.DisplayName)
	assert.InDelta(t, 9.99, out.Transactions[0].Amount, 0.001)
}

func TestLedgerService_ListTransactions_HasMore(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		offset  int
		total   int64
		hasMore bool
	}{
		{"first page of many", 10, 0, 25, true},
		{"middle page", 10, 10, 25, true},
		{"last partial page", 10, 20, 25, false},
		{"offset beyond total", 10, 30, 25, false},
		{"exact boundary", 10, 15, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linkRepo := new(MockLinkRepository)
			ledgerRepo := new(MockLedgerRepository)
			svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

			linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-1").
				Return(linkedAccount("dana"), nil)
			ledgerRepo.On("ListTransactions", mock.Anything, mock.Anything).
				Return([]*entity.Transaction{}, nil)
			ledgerRepo.On("CountTransactions", mock.Anything, mock.Anything).
				Return(tt.total, nil)

			out, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{
				ExternalID: "ext-1",
				Limit:      tt.limit,
				Offset:     tt.offset,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.hasMore, out.Pagination.HasMore)
		})
	}
}

func TestLedgerService_ListTransactions_ClampsPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit defaults", 0, 0, 10, 0},
		{"negative limit defaults", -3, 0, 10, 0},
		{"oversized limit caps", 1000, 0, 100, 0},
		{"negative offset floors", 10, -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linkRepo := new(MockLinkRepository)
			ledgerRepo := new(MockLedgerRepository)
			svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

			linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-1").
				Return(linkedAccount("dana"), nil)
			ledgerRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f *entity.TransactionFilter) bool {
				return f.Limit == tt.wantLimit && f.Offset == tt.wantOffset
			})).Return([]*entity.Transaction{}, nil)
			ledgerRepo.On("CountTransactions", mock.Anything, mock.Anything).Return(int64(0), nil)

			out, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{
				ExternalID: "ext-1",
				Limit:      tt.limit,
				Offset:     tt.offset,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, out.Pagination.Limit)
			assert.Equal(t, tt.wantOffset, out.Pagination.Offset)
		})
	}
}

func TestLedgerService_ListTransactions_FallsBackToUsername(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	ledgerRepo := new(MockLedgerRepository)
	svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

	// The external id has no active link, but the username still resolves.
	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-9").
		Return(nil, repository.ErrLinkNotFound)
	linkRepo.On("FindAccountByUsername", mock.Anything, "dana").
		Return(linkedAccount("dana"), nil)
	ledgerRepo.On("ListTransactions", mock.Anything, mock.Anything).
		Return([]*entity.Transaction{}, nil)
	ledgerRepo.On("CountTransactions", mock.Anything, mock.Anything).Return(int64(0), nil)

	out, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{
		ExternalID: "ext-9",
		Username:   "dana",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana", out.Account.Username)
}

func TestLedgerService_ListTransactions_UnlinkedExternalIDOnly(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	ledgerRepo := new(MockLedgerRepository)
	svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-9").
		Return(nil, repository.ErrLinkNotFound)

	_, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{ExternalID: "ext-9"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestLedgerService_ListTransactions_CountFailure(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	ledgerRepo := new(MockLedgerRepository)
	svc := newLedgerServiceForTest(linkRepo, ledgerRepo)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-1").
		Return(linkedAccount("dana"), nil)
	ledgerRepo.On("ListTransactions", mock.Anything, mock.Anything).
		Return([]*entity.Transaction{}, nil)
	ledgerRepo.On("CountTransactions", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("count failed"))

	_, err := svc.ListTransactions(context.Background(), &usecase.ListTransactionsInput{ExternalID: "ext-1"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORAGE_FAILED", appErr.ErrorCode())
}
