package impl

import (
	"context"
	"log/slog"

	"loyaltysync/internal/domain/entity"
	domainerrors "loyaltysync/internal/domain/errors"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/domain/service"
	"loyaltysync/internal/errors"
	"loyaltysync/internal/usecase"

	"go.uber.org/fx"
)

// linkService implements the LinkUsecase interface.
type linkService struct {
	linkRepo repository.LinkRepository
	audit    service.AuditRecorder
	logger   *slog.Logger
}

// LinkServiceParams holds dependencies for linkService, injected by Fx.
type LinkServiceParams struct {
	fx.In

	LinkRepo repository.LinkRepository
	Audit    service.AuditRecorder
	Logger   *slog.Logger
}

// NewLinkService is the constructor for linkService.
func NewLinkService(params LinkServiceParams) usecase.LinkUsecase {
	return &linkService{
		linkRepo: params.LinkRepo,
		audit:    params.Audit,
		logger:   params.Logger,
	}
}

// CheckLink resolves whichever identifier the caller supplied and reports the
// active pairing. An identity with no active link is a successful "not linked"
// answer, never an error; validation failures short-circuit before any store
// call.
func (srv *linkService) CheckLink(ctx context.Context, input *usecase.CheckLinkInput) (*usecase.CheckLinkOutput, error) {
	if input == nil || (input.ExternalID == "" && input.Username == "") {
		return nil, domainerrors.ErrValidation.WrapMessage("either external_id or username is required")
	}

	// External id takes priority when both identifiers are present.
	if input.ExternalID != "" {
		return srv.checkByExternalID(ctx, input.ExternalID)
	}

	return srv.checkByUsername(ctx, input.Username)
}

func (srv *linkService) checkByExternalID(ctx context.Context, externalID string) (*usecase.CheckLinkOutput, error) {
	link, err := srv.linkRepo.FindActiveLinkByExternalID(ctx, externalID)
	if errors.Is(err, repository.ErrLinkNotFound) {
		return &usecase.CheckLinkOutput{IsLinked: false, Data: nil}, nil
	}
	if err != nil {
		srv.logger.Error("link lookup by external id failed", slog.String("externalID", externalID), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to resolve link by external id")
	}

	srv.audit.Record(ctx, &service.AuditEvent{
		Level:   "info",
		Source:  "link",
		Message: "link checked by external id",
		UserID:  externalID,
	})

	return &usecase.CheckLinkOutput{IsLinked: true, Data: toLinkSnapshot(link)}, nil
}

func (srv *linkService) checkByUsername(ctx context.Context, username string) (*usecase.CheckLinkOutput, error) {
	link, err := srv.linkRepo.FindAccountByUsername(ctx, username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("unknown loyalty username")
	}
	if err != nil {
		srv.logger.Error("link lookup by username failed", slog.String("username", username), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to resolve link by username")
	}

	// Known account with no active link: the snapshot still carries the
	// loyalty side so the caller can present balance and tier, but the
	// external-identity side stays empty.
	if link.Identity == nil || !link.IsActive {
		out := &usecase.CheckLinkOutput{IsLinked: false}
		if link.Account != nil {
			out.Data = toLinkSnapshot(link)
		}

		return out, nil
	}

	return &usecase.CheckLinkOutput{IsLinked: true, Data: toLinkSnapshot(link)}, nil
}

// toLinkSnapshot shapes a link row for the response. Decimal balances convert
// to floating point here and nowhere earlier.
func toLinkSnapshot(link *entity.AccountLink) *usecase.LinkSnapshot {
	if link == nil || link.Account == nil {
		return nil
	}

	snapshot := &usecase.LinkSnapshot{
		AccountID:   link.Account.Username,
		DisplayName: link.Account.DisplayName(),
		Phone:       link.Account.Phone,
		Points:      link.Account.Points,
		Tier:        link.Account.Tier,
		Balance:     link.Account.Balance.InexactFloat64(),
		LinkedAt:    link.LinkedAt,
		UpdatedAt:   link.Account.UpdatedAt,
		IsActive:    link.IsActive,
	}
	if link.Identity != nil {
		snapshot.ExternalID = link.Identity.ID
		if link.Identity.DisplayName != "" {
			snapshot.DisplayName = link.Identity.DisplayName
		}
	}

	return snapshot
}
