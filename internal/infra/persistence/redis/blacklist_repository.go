package redis

import (
	"context"
	"strconv"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/repository"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// blacklistRepository stores revoked tokens as keys with a native TTL.
// The stored value is the revocation time so reads can still enforce the
// window if the key outlives it.
type blacklistRepository struct {
	client goredis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

// NewBlacklistRepository is the constructor for the Redis blacklist.
func NewBlacklistRepository(client *goredis.Client, cfg *config.Config) repository.BlacklistRepository {
	return newBlacklistRepository(client, cfg.Blacklist.TTL, time.Now)
}

func newBlacklistRepository(client goredis.UniversalClient, ttl time.Duration, now func() time.Time) *blacklistRepository {
	return &blacklistRepository{client: client, ttl: ttl, now: now}
}

// Add records the token unless it is already present.
func (repo *blacklistRepository) Add(ctx context.Context, token string) error {
	createdAt := strconv.FormatInt(repo.now().UnixNano(), 10)

	ok, err := repo.client.SetNX(ctx, blacklistKey(token), createdAt, repo.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "failed to blacklist token")
	}
	if !ok {
		return errors.WithStack(repository.ErrTokenAlreadyBlacklisted)
	}

	return nil
}

// Contains reports whether an unexpired entry exists for the token.
func (repo *blacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	raw, err := repo.client.Get(ctx, blacklistKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to look up blacklisted token")
	}

	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, errors.Wrapf(err, "corrupt blacklist entry %q", raw)
	}

	return repo.now().Sub(time.Unix(0, nanos)) < repo.ttl, nil
}

// PurgeExpired is a no-op: Redis evicts keys when their TTL elapses.
func (repo *blacklistRepository) PurgeExpired(context.Context) (int64, error) {
	return 0, nil
}

func blacklistKey(token string) string {
	return blacklistKeyPrefix + token
}
