package main

import (
	"context"
	"log/slog"
	"os"

	"loyaltysync/config"
	"loyaltysync/internal/delivery"
	"loyaltysync/internal/delivery/http"
	"loyaltysync/internal/delivery/http/middleware"
	"loyaltysync/internal/delivery/http/router/handler"
	"loyaltysync/internal/domain/service"
	"loyaltysync/internal/infra/audit"
	logs "loyaltysync/internal/infra/log"
	"loyaltysync/internal/infra/persistence/postgres"
	"loyaltysync/internal/infra/pubsub"
	"loyaltysync/internal/infra/qrcode"
	"loyaltysync/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewLinkRepository,
			postgres.NewIdentityRepository,
			postgres.NewLedgerRepository,
			postgres.NewSessionRepository,
			postgres.NewSystemLogRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			audit.NewRecorder,
			pubsub.NewEventPublisher,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service when rendering is enabled.
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil || !cfg.QRCode.Enabled {
		return nil
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLinkService,
			impl.NewLedgerService,
			impl.NewSyncService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewAPIKeyMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewLinkHandler,
			handler.NewLedgerHandler,
			handler.NewSyncHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
