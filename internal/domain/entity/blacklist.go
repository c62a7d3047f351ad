package entity

import "time"

// BlacklistEntry records a session token that was revoked on logout.
type BlacklistEntry struct {
	Token     string
	CreatedAt time.Time
}

// ExpiredAt reports whether the entry is older than ttl at the given instant.
func (e *BlacklistEntry) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return !now.Before(e.CreatedAt.Add(ttl))
}
