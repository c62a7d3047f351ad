package main

import (
	"context"
	"log/slog"
	"os"

	"ridehail/config"
	"ridehail/internal/delivery"
	"ridehail/internal/delivery/api"
	"ridehail/internal/delivery/api/middleware"
	"ridehail/internal/delivery/api/router/handler"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/auth"
	logs "ridehail/internal/infra/log"
	"ridehail/internal/infra/metrics"
	"ridehail/internal/infra/persistence/postgres"
	"ridehail/internal/infra/persistence/redis"
	"ridehail/internal/infra/pubsub"
	"ridehail/internal/infra/scheduler"
	"ridehail/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
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
			startBlacklistPurger,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		metrics.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			newBlacklistRepository,
		),
	)
}

type blacklistParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// newBlacklistRepository selects the blacklist backend from configuration.
// The Redis client is only created when Redis is the configured backend.
func newBlacklistRepository(params blacklistParams) (repository.BlacklistRepository, error) {
	switch params.Config.Blacklist.Backend {
	case config.BlacklistBackendPostgres:
		return postgres.NewBlacklistRepository(params.DB, params.Config), nil

	case config.BlacklistBackendRedis:
		client, err := redis.NewClient(redis.ClientParams{
			LC:     params.LC,
			Config: params.Config,
			Logger: params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return redis.NewBlacklistRepository(client, params.Config), nil

	default:
		return nil, errors.Errorf("unknown blacklist backend: %s", params.Config.Blacklist.Backend)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startBlacklistPurger schedules physical deletion of expired blacklist rows.
// Redis expires keys on its own, so no job is needed there.
func startBlacklistPurger(params scheduler.PurgerParams) error {
	if params.Config.Blacklist.Backend == config.BlacklistBackendRedis {
		return nil
	}

	_, err := scheduler.NewBlacklistPurger(params)

	return err
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
