// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Operation names reported to AuthMetrics.
const (
	opRegister     = "register"
	opLogin        = "login"
	opLogout       = "logout"
	opAuthenticate = "authenticate"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	blacklist    repository.BlacklistRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	metrics      service.AuthMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Blacklist    repository.BlacklistRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Metrics      service.AuthMetrics
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		blacklist:    params.Blacklist,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, srv.logger)
}

// Register hashes the password, inserts the account, and opens a session for it.
// The unique email index is the only duplicate guard.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (output *usecase.AuthOutput, err error) {
	defer func() { srv.record(opRegister, err) }()

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("role", input.Role.String()), slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidInput) {
			return nil, errors.Wrap(err, "password rejected by hasher")
		}
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if input.Role == entity.RoleCaptain {
		account.Captain = &entity.CaptainProfile{
			Status:  entity.CaptainStatusInactive,
			Vehicle: *input.Vehicle,
		}
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrAccountAlreadyExists) {
			srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", input.Email))

			return nil, errors.Wrap(err, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	token, err := srv.issueToken(ctx, account)
	if err != nil {
		return nil, err
	}

	srv.publish(ctx, service.EventAccountRegistered, account)
	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Token: token, Account: account.WithoutSecret()}, nil
}

// Login verifies credentials against the account registered under the given role.
// Unknown email, role mismatch, and wrong password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (output *usecase.AuthOutput, err error) {
	defer func() { srv.record(opLogin, err) }()

	srv.log(ctx).Debug("Starting login", slog.String("role", input.Role.String()), slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email, repository.WithSecret)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if account.Role != input.Role {
		srv.log(ctx).Warn("Login failed, role mismatch", slog.String("email", input.Email), slog.String("role", account.Role.String()))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.issueToken(ctx, account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Token: token, Account: account.WithoutSecret()}, nil
}

// Logout blacklists the presented token. Revoking an already revoked token succeeds.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) (err error) {
	defer func() { srv.record(opLogout, err) }()

	if input == nil || input.Token == "" {
		return errors.WithStack(domainerrors.ErrMissingToken)
	}

	if err := srv.blacklist.Add(ctx, input.Token); err != nil {
		if !errors.Is(err, repository.ErrTokenAlreadyBlacklisted) {
			srv.log(ctx).Error("Failed to blacklist token", slog.Any("error", err))

			return errors.Wrap(err, "failed to blacklist token during logout")
		}
		srv.log(ctx).Debug("Token already blacklisted")
	}

	// The token may be expired or forged; the blacklist write above still applies.
	if claims, verifyErr := srv.tokenService.Verify(input.Token); verifyErr == nil {
		srv.publish(ctx, service.EventSessionRevoked, &entity.Account{ID: claims.AccountID, Role: claims.Role})
	}

	return nil
}

// Authenticate checks the blacklist before the signature so revoked tokens are refused
// even while still cryptographically valid.
func (srv *authService) Authenticate(ctx context.Context, token string) (account *entity.Account, err error) {
	defer func() { srv.record(opAuthenticate, err) }()

	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing token")
	}

	revoked, err := srv.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token blacklist")
	}
	if revoked {
		return nil, errors.Wrap(domainerrors.ErrTokenRevoked, "token has been revoked")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	account, err = srv.accountRepo.FindByID(ctx, claims.AccountID, repository.WithoutSecret)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account for token")
	}

	if account.Role != claims.Role {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token role does not match account")
	}

	return account, nil
}

// GetProfile returns the account resolved by Authenticate.
func (srv *authService) GetProfile(_ context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return account.WithoutSecret(), nil
}

func (srv *authService) issueToken(ctx context.Context, account *entity.Account) (string, error) {
	token, err := srv.tokenService.Issue(account.ID, account.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return token, nil
}

// publish emits a domain event. Failures are logged, never returned.
func (srv *authService) publish(ctx context.Context, eventType string, account *entity.Account) {
	event := &service.AccountEvent{
		RequestID:  deliverycontext.RequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		AccountID:  account.ID.String(),
		Role:       account.Role.String(),
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.Any("error", err),
		)
	}
}

func (srv *authService) record(operation string, err error) {
	srv.metrics.RecordAuthOperation(operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	if err == nil {
		return service.OutcomeSuccess
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		return service.OutcomeRejected
	}

	return service.OutcomeError
}

func validateRegistration(input *usecase.RegisterInput) error {
	if input == nil {
		return errors.WithStack(domainerrors.ErrInvalidInput)
	}

	if !input.Role.IsValid() {
		return errors.WithStack(domainerrors.NewValidationError(domainerrors.FieldError{
			Field: "role", Message: "Role must be one of: user, captain",
		}))
	}

	if input.Role == entity.RoleCaptain {
		if input.Vehicle == nil {
			return errors.WithStack(domainerrors.NewValidationError(domainerrors.FieldError{
				Field: "vehicle", Message: "Vehicle details are required",
			}))
		}
		if !input.Vehicle.VehicleType.IsValid() {
			return errors.WithStack(domainerrors.NewValidationError(domainerrors.FieldError{
				Field: "vehicle.vehicleType", Message: "Vehicle type must be one of: car, bike, auto",
			}))
		}
	}

	return nil
}
