package main

import (
	"context"
	"log/slog"
	"os"

	"voidbot/config"
	"voidbot/internal/delivery"
	"voidbot/internal/delivery/http"
	"voidbot/internal/delivery/http/middleware"
	"voidbot/internal/delivery/http/router/handler"
	"voidbot/internal/delivery/janitor"
	"voidbot/internal/domain/service"
	"voidbot/internal/infra/auth"
	"voidbot/internal/infra/auth/discord"
	"voidbot/internal/infra/authstate"
	logs "voidbot/internal/infra/log"
	"voidbot/internal/infra/persistence/postgres"
	"voidbot/internal/infra/pubsub"
	"voidbot/internal/infra/qrcode"
	"voidbot/internal/usecase/impl"

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
		pubsub.Module,
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
			postgres.NewUserRepository,
			postgres.NewSessionRepository,
			postgres.NewGuildSelectionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			discord.NewOAuthService,
			newStateStore,
			newQRCodeService,
		),
	)
}

// newStateStore creates the login state store and stops its expiry loop on
// shutdown.
func newStateStore(lc fx.Lifecycle, cfg *config.Config) service.StateStore {
	store := authstate.New(cfg)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			store.Stop()

			return nil
		},
	})

	return store
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewGuildService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewGuildHandler,
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
			fx.Annotate(
				janitor.New,
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
