package service

import (
	"errors"
	"time"

	"ridehail/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for malformed, expired, or tampered tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims defines the custom claims carried by a session token.
type Claims struct {
	AccountID uuid.UUID   `json:"-"`
	Role      entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue signs a token for the account, valid for TTL().
	Issue(accountID uuid.UUID, role entity.Role) (string, error)

	// Verify checks signature and expiry. Every failure is reported as ErrInvalidToken.
	Verify(token string) (*Claims, error)

	// TTL returns the validity window of issued tokens.
	TTL() time.Duration
}
