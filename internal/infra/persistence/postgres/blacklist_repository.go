package postgres

import (
	"context"
	"time"

	"ridehail/config"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// blacklistRepository implements repository.BlacklistRepository on a SQL table.
// Expiry is evaluated on every read; PurgeExpired only reclaims space.
type blacklistRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewBlacklistRepository is the constructor for blacklistRepository.
func NewBlacklistRepository(db *gorm.DB, cfg *config.Config) repository.BlacklistRepository {
	return newBlacklistRepository(db, cfg.Blacklist.TTL, time.Now)
}

func newBlacklistRepository(db *gorm.DB, ttl time.Duration, now func() time.Time) *blacklistRepository {
	return &blacklistRepository{db: db, ttl: ttl, now: now}
}

// Add inserts the token with the current timestamp.
func (repo *blacklistRepository) Add(ctx context.Context, token string) error {
	entry := &model.BlacklistedTokenModel{
		Token:     token,
		CreatedAt: repo.now().UTC(),
	}

	if err := repo.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrTokenAlreadyBlacklisted)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to blacklist token")
	}

	return nil
}

// Contains reports whether an unexpired entry exists for the token.
func (repo *blacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.BlacklistedTokenModel{}).
		Where("token = ? AND created_at > ?", token, repo.cutoff()).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to look up blacklisted token")
	}

	return count > 0, nil
}

// PurgeExpired deletes every entry older than the TTL.
func (repo *blacklistRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("created_at <= ?", repo.cutoff()).
		Delete(&model.BlacklistedTokenModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to purge expired blacklisted tokens")
	}

	return result.RowsAffected, nil
}

func (repo *blacklistRepository) cutoff() time.Time {
	return repo.now().UTC().Add(-repo.ttl)
}
