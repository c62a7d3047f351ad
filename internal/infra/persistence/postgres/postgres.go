package postgres

import (
	"context"
	"log/slog"

	"ridehail/config"
	"ridehail/internal/domain/lifecycle"
	"ridehail/internal/infra/metrics"
	"ridehail/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Registry `optional:"true"`
}

// New opens the PostgreSQL pool, verifies it on start, and migrates the schema
// when migration.autoMigrate is set. Pool statistics are exported as metrics.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every repository operation is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config),
	})
	// Surface driver-specific constraint errors as gorm.ErrDuplicatedKey.
	db.Config.TranslateError = true

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	var poolStats prometheus.Collector
	if params.Metrics != nil {
		poolStats = collectors.NewDBStatsCollector(sqlDB, "postgres")
		if err := params.Metrics.Register(poolStats); err != nil {
			return nil, errors.Wrap(err, "failed to register PostgreSQL pool metrics")
		}
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if params.Config.Migration.AutoMigrate {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
				params.Logger.Info("PostgreSQL schema migrated")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			if poolStats != nil {
				params.Metrics.Unregister(poolStats)
			}

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// Migrate creates or updates the tables backing accounts and the token blacklist.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.Models()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
