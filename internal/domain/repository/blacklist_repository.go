package repository

import (
	"context"
	"errors"
)

// ErrTokenAlreadyBlacklisted is returned by Add when the token is already present.
var ErrTokenAlreadyBlacklisted = errors.New("token already blacklisted")

// BlacklistRepository stores revoked session tokens until they expire.
type BlacklistRepository interface {
	// Add records the token with the current time.
	Add(ctx context.Context, token string) error

	// Contains reports whether the token is blacklisted and not yet expired.
	// Entries past their TTL count as absent even if they were not purged.
	Contains(ctx context.Context, token string) (bool, error)

	// PurgeExpired physically removes expired entries and returns how many were deleted.
	PurgeExpired(ctx context.Context) (int64, error)
}
