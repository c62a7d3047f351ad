// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// publicAccountColumns is the default projection; it never includes password_hash.
var publicAccountColumns = []string{
	"id", "role", "first_name", "last_name", "email",
	"captain_status", "vehicle_color", "vehicle_plate", "vehicle_capacity", "vehicle_type",
	"created_at", "updated_at",
}

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string, mode repository.ReadMode) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.scoped(ctx, mode).
		Where("email = ?", email).
		Take(&accountM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID, mode repository.ReadMode) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.scoped(ctx, mode).
		Where("id = ?", id).
		Take(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. The unique index on email is the only
// duplicate guard, so concurrent registrations cannot both succeed.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}

	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert database errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

func (repo *accountRepository) scoped(ctx context.Context, mode repository.ReadMode) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.AccountModel{})
	if mode != repository.WithSecret {
		query = query.Select(publicAccountColumns)
	}

	return query
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:           data.ID,
		Role:         entity.Role(data.Role),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if account.Role == entity.RoleCaptain {
		account.Captain = &entity.CaptainProfile{
			Status: entity.CaptainStatus(deref(data.CaptainStatus)),
			Vehicle: entity.Vehicle{
				Color:       deref(data.VehicleColor),
				Plate:       deref(data.VehiclePlate),
				Capacity:    deref(data.VehicleCapacity),
				VehicleType: entity.VehicleType(deref(data.VehicleType)),
			},
		}
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		Role:         data.Role.String(),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Captain != nil {
		status := string(data.Captain.Status)
		vehicleType := string(data.Captain.Vehicle.VehicleType)
		accountM.CaptainStatus = &status
		accountM.VehicleColor = &data.Captain.Vehicle.Color
		accountM.VehiclePlate = &data.Captain.Vehicle.Plate
		accountM.VehicleCapacity = &data.Captain.Vehicle.Capacity
		accountM.VehicleType = &vehicleType
	}

	return accountM
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}

	return *v
}
