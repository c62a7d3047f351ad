// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a rider or a captain.
// Vehicle is required for captains and ignored for riders.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role
	Vehicle   *entity.Vehicle
}

// LoginInput defines the credentials for a login attempt against one role.
type LoginInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// LogoutInput carries the session token presented by the client.
type LogoutInput struct {
	Token string
}

// --- Output DTOs ---

// AuthOutput is returned by a successful registration or login.
// Account never carries the password hash.
type AuthOutput struct {
	Token   string
	Account *entity.Account
}

// AuthUsecase defines the account and session operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error

	// Authenticate resolves a presented token to its account.
	// Blacklisted, invalid, and orphaned tokens are all rejected.
	Authenticate(ctx context.Context, token string) (*entity.Account, error)

	GetProfile(ctx context.Context, account *entity.Account) (*entity.Account, error)
}
