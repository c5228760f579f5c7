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

func newLinkServiceForTest(linkRepo *MockLinkRepository, audit *MockAuditRecorder) usecase.LinkUsecase {
	return NewLinkService(LinkServiceParams{
		LinkRepo: linkRepo,
		Audit:    audit,
		Logger:   newDiscardLogger(),
	})
}

func TestLinkService_CheckLink_MissingIdentifiers(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	_, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Validation short-circuits before any store access.
	linkRepo.AssertNotCalled(t, "FindActiveLinkByExternalID", mock.Anything, mock.Anything)
	linkRepo.AssertNotCalled(t, "FindAccountByUsername", mock.Anything, mock.Anything)
}

func TestLinkService_CheckLink_ByExternalID_Linked(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	link := &entity.AccountLink{
		ExternalID:      "ext-1",
		LoyaltyUsername: "alice",
		IsActive:        true,
		LinkMethod:      entity.LinkMethodSync,
		LinkedAt:        linkedAt,
		Identity: &entity.ExternalIdentity{
			ID:          "ext-1",
			DisplayName: "Alice from Chat",
		},
		Account: &entity.LoyaltyAccount{
			Username:  "alice",
			FirstName: "Alice",
			LastName:  "Liddell",
			Balance:   decimal.RequireFromString("120.50"),
			Tier:      "gold",
			Points:    42,
		},
	}
	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-1").Return(link, nil)
	audit.On("Record", mock.Anything, mock.Anything).Return()

	out, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{ExternalID: "ext-1"})
	require.NoError(t, err)
	require.True(t, out.IsLinked)
	require.NotNil(t, out.Data)
	assert.Equal(t, "alice", out.Data.AccountID)
	assert.Equal(t, "ext-1", out.Data.ExternalID)
	// Identity display name overrides the account-side legal name.
	assert.Equal(t, "Alice from Chat", out.Data.DisplayName)
	assert.InDelta(t, 120.50, out.Data.Balance, 0.001)
	assert.Equal(t, 42, out.Data.Points)
	assert.Equal(t, linkedAt, out.Data.LinkedAt)
}

func TestLinkService_CheckLink_ByExternalID_NotLinked(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-2").
		Return(nil, repository.ErrLinkNotFound)

	out, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{ExternalID: "ext-2"})
	require.NoError(t, err)
	assert.False(t, out.IsLinked)
	assert.Nil(t, out.Data)
}

func TestLinkService_CheckLink_ExternalIDTakesPriority(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-3").
		Return(nil, repository.ErrLinkNotFound)

	_, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{
		ExternalID: "ext-3",
		Username:   "bob",
	})
	require.NoError(t, err)

	linkRepo.AssertNotCalled(t, "FindAccountByUsername", mock.Anything, mock.Anything)
}

func TestLinkService_CheckLink_ByUsername_UnknownAccount(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkRepo.On("FindAccountByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrAccountNotFound)

	_, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{Username: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestLinkService_CheckLink_ByUsername_KnownButUnlinked(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	link := &entity.AccountLink{
		LoyaltyUsername: "carol",
		IsActive:        false,
		Account: &entity.LoyaltyAccount{
			Username: "carol",
			Balance:  decimal.RequireFromString("5.00"),
			Tier:     "bronze",
		},
	}
	linkRepo.On("FindAccountByUsername", mock.Anything, "carol").Return(link, nil)

	out, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{Username: "carol"})
	require.NoError(t, err)
	assert.False(t, out.IsLinked)
	// The loyalty side still comes back so callers can present balance and
	// tier, but no identity is attached.
	require.NotNil(t, out.Data)
	assert.Equal(t, "carol", out.Data.AccountID)
	assert.Empty(t, out.Data.ExternalID)
	assert.Equal(t, "carol", out.Data.DisplayName)
}

func TestLinkService_CheckLink_StoreTimeout(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-4").
		Return(nil, errors.Wrap(context.DeadlineExceeded, "find link"))

	_, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{ExternalID: "ext-4"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStoreTimeout)
}

func TestLinkService_CheckLink_StoreFailure(t *testing.T) {
	linkRepo := new(MockLinkRepository)
	audit := new(MockAuditRecorder)
	svc := newLinkServiceForTest(linkRepo, audit)

	linkRepo.On("FindActiveLinkByExternalID", mock.Anything, "ext-5").
		Return(nil, errors.New("connection refused"))

	_, err := svc.CheckLink(context.Background(), &usecase.CheckLinkInput{ExternalID: "ext-5"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORAGE_FAILED", appErr.ErrorCode())
}
