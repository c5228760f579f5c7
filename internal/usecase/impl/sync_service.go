package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/url"
	"time"

	"loyaltysync/config"
	deliverycontext "loyaltysync/internal/delivery/context"
	"loyaltysync/internal/domain/entity"
	domainerrors "loyaltysync/internal/domain/errors"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/domain/service"
	"loyaltysync/internal/errors"
	"loyaltysync/internal/usecase"

	"go.uber.org/fx"
)

const defaultSessionTTL = 10 * time.Minute

// syncService implements the SyncUsecase interface.
type syncService struct {
	txManager    repository.TransactionManager
	sessionRepo  repository.SessionRepository
	identityRepo repository.IdentityRepository
	audit        service.AuditRecorder
	publisher    service.EventPublisher
	qrService    service.QRCodeService
	sessionTTL   time.Duration
	loginBaseURL string
	logger       *slog.Logger
}

// SyncServiceParams holds dependencies for syncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SessionRepo  repository.SessionRepository
	IdentityRepo repository.IdentityRepository
	Audit        service.AuditRecorder
	Publisher    service.EventPublisher
	QRService    service.QRCodeService `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSyncService is the constructor for syncService.
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	ttl := defaultSessionTTL
	loginBaseURL := ""
	if params.Config != nil && params.Config.Sync != nil {
		if params.Config.Sync.SessionTTL > 0 {
			ttl = params.Config.Sync.SessionTTL
		}
		loginBaseURL = params.Config.Sync.LoginBaseURL
	}

	return &syncService{
		txManager:    params.TxManager,
		sessionRepo:  params.SessionRepo,
		identityRepo: params.IdentityRepo,
		audit:        params.Audit,
		publisher:    params.Publisher,
		qrService:    params.QRService,
		sessionTTL:   ttl,
		loginBaseURL: loginBaseURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *syncService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterSyncSession starts a handshake: it stores a waiting session keyed by
// a fresh opaque token and hands back the login URL that completes the pairing
// out-of-band. The write is an upsert on the token, so a retried registration
// overwrites rather than duplicates. Profile sync, audit and event publishing
// ride alongside as best-effort side effects.
func (srv *syncService) RegisterSyncSession(ctx context.Context, input *usecase.RegisterSyncSessionInput) (*usecase.RegisterSyncSessionOutput, error) {
	if input == nil || input.ExternalID == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("external_id is required")
	}

	now := time.Now()
	syncID, err := newSyncID(now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate sync token")
	}

	session := &entity.SyncSession{
		SyncID:     syncID,
		ExternalID: input.ExternalID,
		Status:     entity.SessionWaiting,
		ExpiresAt:  now.Add(srv.sessionTTL),
	}
	if err := srv.sessionRepo.UpsertSession(ctx, session); err != nil {
		srv.log(ctx).Error("failed to register sync session", slog.String("externalID", input.ExternalID), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to register sync session")
	}

	srv.syncProfile(ctx, input.ExternalID, input.Profile)

	srv.audit.Record(ctx, &service.AuditEvent{
		Level:   "info",
		Source:  "sync",
		Message: "sync session registered",
		UserID:  input.ExternalID,
		Data:    map[string]any{"sync_id": syncID},
	})
	srv.publish(ctx, &service.LinkEvent{
		EventType:  "session_registered",
		ExternalID: input.ExternalID,
		SyncID:     syncID,
	})

	output := &usecase.RegisterSyncSessionOutput{
		SyncID:    syncID,
		ExpiresAt: session.ExpiresAt,
		LoginURL:  srv.loginURL(syncID),
	}
	if srv.qrService != nil {
		if png, qrErr := srv.qrService.GenerateLoginQR(output.LoginURL); qrErr != nil {
			srv.log(ctx).Warn("login QR generation failed", slog.Any("error", qrErr))
		} else {
			output.QRCodePNG = base64.StdEncoding.EncodeToString(png)
		}
	}

	return output, nil
}

// GetSession reports handshake state with the expiry predicate applied at read
// time. The stored row is never mutated on expiry.
func (srv *syncService) GetSession(ctx context.Context, syncID string) (*usecase.SessionStatusOutput, error) {
	if syncID == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("sync_id is required")
	}

	session, err := srv.sessionRepo.FindBySyncID(ctx, syncID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, domainerrors.ErrSessionNotFound.WrapMessage("unknown sync token")
	}
	if err != nil {
		return nil, classifyStoreError(err, "failed to load sync session")
	}

	return &usecase.SessionStatusOutput{
		SyncID:     session.SyncID,
		ExternalID: session.ExternalID,
		Status:     string(session.EffectiveStatus(time.Now())),
		ExpiresAt:  session.ExpiresAt,
		CreatedAt:  session.CreatedAt,
	}, nil
}

// ConfirmLink completes the handshake once the loyalty platform has
// authenticated the account: inside one transaction it re-reads the session,
// upserts the pairing, and marks the session linked. An expired session is
// rejected even though its stored status still reads waiting.
func (srv *syncService) ConfirmLink(ctx context.Context, input *usecase.ConfirmLinkInput) (*usecase.ConfirmLinkOutput, error) {
	if input == nil || input.SyncID == "" || input.Username == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("sync_id and username are required")
	}

	var confirmed *entity.AccountLink
	var externalID string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()
		linkRepo := repoFactory.LinkRepo()

		session, err := sessionRepo.FindBySyncID(ctx, input.SyncID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domainerrors.ErrSessionNotFound.WrapMessage("unknown sync token")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load sync session")
		}
		if !session.Usable(time.Now()) {
			return domainerrors.ErrSessionNotUsable.WrapMessage("session expired or already consumed")
		}
		externalID = session.ExternalID

		link, err := linkRepo.UpsertLink(ctx, session.ExternalID, input.Username, entity.LinkMethodSync)
		if err != nil {
			return errors.Wrap(err, "failed to upsert account link")
		}
		confirmed = link

		if err := sessionRepo.MarkLinked(ctx, input.SyncID); err != nil {
			return errors.Wrap(err, "failed to mark session linked")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("link confirmation failed", slog.String("syncID", input.SyncID), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to confirm link")
	}

	srv.audit.Record(ctx, &service.AuditEvent{
		Level:   "info",
		Source:  "link",
		Message: "account link confirmed",
		UserID:  externalID,
		Data:    map[string]any{"sync_id": input.SyncID, "username": input.Username},
	})
	srv.publish(ctx, &service.LinkEvent{
		EventType:       "link_confirmed",
		ExternalID:      externalID,
		LoyaltyUsername: input.Username,
		SyncID:          input.SyncID,
	})

	return &usecase.ConfirmLinkOutput{
		ExternalID: externalID,
		Username:   input.Username,
		LinkedAt:   confirmed.LinkedAt,
	}, nil
}

// syncProfile persists caller-supplied profile attributes. Profile staleness
// is non-critical, so failures are logged once and swallowed.
func (srv *syncService) syncProfile(ctx context.Context, externalID string, profile *usecase.ProfileAttributes) {
	if profile == nil {
		return
	}

	identity := &entity.ExternalIdentity{
		ID:          externalID,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Locale:      profile.Locale,
	}
	if err := srv.identityRepo.UpsertIdentity(ctx, identity); err != nil {
		srv.log(ctx).Warn("profile sync failed", slog.String("externalID", externalID), slog.Any("error", err))
	}
}

// publish mirrors an event onto the message queue, discarding the error
// channel after one log emission.
func (srv *syncService) publish(ctx context.Context, event *service.LinkEvent) {
	if srv.publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if err := srv.publisher.PublishLinkEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("link event publish failed", slog.String("eventType", event.EventType), slog.Any("error", err))
	}
}

func (srv *syncService) loginURL(syncID string) string {
	base := srv.loginBaseURL
	if base == "" {
		return ""
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return base
	}
	query := parsed.Query()
	query.Set("sync_id", syncID)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
