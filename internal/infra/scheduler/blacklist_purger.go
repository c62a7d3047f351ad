// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/lifecycle"
	"ridehail/internal/domain/repository"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type PurgerParams struct {
	fx.In

	LC        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Blacklist repository.BlacklistRepository
}

// BlacklistPurger periodically deletes blacklist entries that have outlived their TTL.
// Expiry is already enforced on read, so a missed run only costs storage.
type BlacklistPurger struct {
	scheduler gocron.Scheduler
	blacklist repository.BlacklistRepository
	logger    *slog.Logger
	interval  time.Duration
}

// NewBlacklistPurger creates the purger and binds it to the application lifecycle.
func NewBlacklistPurger(params PurgerParams) (*BlacklistPurger, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}

	purger := &BlacklistPurger{
		scheduler: scheduler,
		blacklist: params.Blacklist,
		logger:    params.Logger,
		interval:  params.Config.Blacklist.PurgeInterval,
	}

	params.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return purger.Start()
		},
		OnStop: func(context.Context) error {
			return purger.Stop()
		},
	})

	return purger, nil
}

// Start schedules the purge job and starts the scheduler.
func (p *BlacklistPurger) Start() error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.Purge),
		gocron.WithName("blacklist-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule blacklist purge")
	}

	p.scheduler.Start()
	p.logger.Info("Blacklist purge scheduled", slog.Duration("interval", p.interval))

	return nil
}

// Stop shuts the scheduler down and waits for a running purge to finish.
func (p *BlacklistPurger) Stop() error {
	return errors.Wrap(p.scheduler.Shutdown(), "failed to stop scheduler")
}

// Purge runs one purge pass.
func (p *BlacklistPurger) Purge() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	purged, err := p.blacklist.PurgeExpired(ctx)
	if err != nil {
		p.logger.Error("Failed to purge expired blacklist entries", slog.Any("error", err))

		return
	}

	if purged > 0 {
		p.logger.Info("Purged expired blacklist entries", slog.Int64("count", purged))
	}
}
