// Package redis contains the Redis-backed persistence adapters.
package redis

import (
	"context"
	"log/slog"

	"ridehail/config"
	"ridehail/internal/domain/lifecycle"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type ClientParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds a Redis client from configuration and ties its lifetime to the fx application.
func NewClient(params ClientParams) (*goredis.Client, error) {
	if params.Config.Redis == nil || params.Config.Redis.Address == "" {
		return nil, errors.New("redis address is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     params.Config.Redis.Address,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Redis connection established", slog.String("address", params.Config.Redis.Address))

			return nil
		},
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing Redis connection")

			return errors.Wrap(client.Close(), "failed to close redis client")
		},
	})

	return client, nil
}
