// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ridehail/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account matches a lookup.
var ErrAccountNotFound = errors.New("account not found")

// ReadMode selects whether the password hash is loaded.
type ReadMode int

const (
	// WithoutSecret omits the password hash. It is the default for every read.
	WithoutSecret ReadMode = iota
	// WithSecret includes the password hash; only credential checks should use it.
	WithSecret
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// FindByEmail retrieves an account by its unique email.
	FindByEmail(ctx context.Context, email string, mode ReadMode) (*entity.Account, error)

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID, mode ReadMode) (*entity.Account, error)

	// Create inserts a new account. A duplicate email is reported as
	// domainerrors.ErrAccountAlreadyExists; there is no separate existence check.
	Create(ctx context.Context, account *entity.Account) error
}
