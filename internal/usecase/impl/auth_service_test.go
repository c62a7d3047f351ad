package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	mockRepo "ridehail/internal/mocks/repository"
	mockSvc "ridehail/internal/mocks/service"
	"ridehail/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	accountRepo  *mockRepo.MockAccountRepository
	blacklist    *mockRepo.MockBlacklistRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
	metrics      *mockSvc.MockAuthMetrics
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	blacklist := mockRepo.NewMockBlacklistRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	metrics := mockSvc.NewMockAuthMetrics(t)

	service := NewAuthService(AuthServiceParams{
		AccountRepo:  accountRepo,
		Blacklist:    blacklist,
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    publisher,
		Metrics:      metrics,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return authServiceFixtures{
		service:      service,
		accountRepo:  accountRepo,
		blacklist:    blacklist,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
		metrics:      metrics,
	}
}

func riderInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName: "Alice",
		LastName:  "Rider",
		Email:     "a@x.com",
		Password:  "secret1",
		Role:      entity.RoleUser,
	}
}

func storedAccount(role entity.Role) *entity.Account {
	return &entity.Account{
		ID:           uuid.New(),
		Role:         role,
		FirstName:    "Alice",
		Email:        "a@x.com",
		PasswordHash: "hashed_password",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := deliverycontext.WithRequest(context.Background(), "req-42", nil)
	input := riderInput()
	accountID := uuid.New()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			assert.Equal(t, "hashed_password", account.PasswordHash)
			assert.Equal(t, entity.RoleUser, account.Role)
			assert.Nil(t, account.Captain)
			account.ID = accountID
		}).
		Return(nil)
	fx.tokenService.EXPECT().Issue(accountID, entity.RoleUser).Return("signed-token", nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.MatchedBy(func(event *service.AccountEvent) bool {
			return event.Type == service.EventAccountRegistered &&
				event.AccountID == accountID.String() &&
				event.RequestID == "req-42"
		})).
		Return(nil)
	fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeSuccess).Return()

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, accountID, output.Account.ID)
	assert.Equal(t, "a@x.com", output.Account.Email)
	assert.Empty(t, output.Account.PasswordHash)
}

func TestAuthService_Register_Captain(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := riderInput()
	input.Role = entity.RoleCaptain
	input.Vehicle = &entity.Vehicle{Color: "red", Plate: "AB123", Capacity: 4, VehicleType: entity.VehicleTypeAuto}

	fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			require.NotNil(t, account.Captain)
			assert.Equal(t, entity.CaptainStatusInactive, account.Captain.Status)
			assert.Equal(t, *input.Vehicle, account.Captain.Vehicle)
			account.ID = uuid.New()
		}).
		Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, entity.RoleCaptain).Return("signed-token", nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)
	fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeSuccess).Return()

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.Account.Captain)
	assert.Equal(t, entity.VehicleTypeAuto, output.Account.Captain.Vehicle.VehicleType)
}

func TestAuthService_Register_AlreadyExists(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists"))
	fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeRejected).Return()

	output, err := fx.service.Register(ctx, riderInput())

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input func() *usecase.RegisterInput
		field string
	}{
		{
			name: "unknown role",
			input: func() *usecase.RegisterInput {
				in := riderInput()
				in.Role = "admin"

				return in
			},
			field: "role",
		},
		{
			name: "captain without vehicle",
			input: func() *usecase.RegisterInput {
				in := riderInput()
				in.Role = entity.RoleCaptain

				return in
			},
			field: "vehicle",
		},
		{
			name: "captain with unknown vehicle type",
			input: func() *usecase.RegisterInput {
				in := riderInput()
				in.Role = entity.RoleCaptain
				in.Vehicle = &entity.Vehicle{Color: "red", Plate: "AB123", Capacity: 2, VehicleType: "boat"}

				return in
			},
			field: "vehicle.vehicleType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeRejected).Return()

			_, err := fx.service.Register(context.Background(), tt.input())

			require.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			var validationErr *domainerrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Fields[0].Field)
		})
	}
}

func TestAuthService_Register_HashFailures(t *testing.T) {
	t.Run("invalid password input", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.hasher.EXPECT().Hash("secret1").Return("", domainerrors.ErrInvalidInput.WrapMessage("too long"))
		fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeRejected).Return()

		_, err := fx.service.Register(context.Background(), riderInput())

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})

	t.Run("hasher failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.hasher.EXPECT().Hash("secret1").Return("", errors.New("entropy exhausted"))
		fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeError).Return()

		_, err := fx.service.Register(context.Background(), riderInput())

		assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	})
}

func TestAuthService_Register_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, entity.RoleUser).Return("signed-token", nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(errors.New("broker down"))
	fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeSuccess).Return()

	output, err := fx.service.Register(ctx, riderInput())

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
}

func TestAuthService_Register_TokenIssueFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, entity.RoleUser).Return("", errors.New("signing failed"))
	fx.metrics.EXPECT().RecordAuthOperation(opRegister, service.OutcomeError).Return()

	_, err := fx.service.Register(ctx, riderInput())

	assert.True(t, errors.Is(err, domainerrors.ErrTokenIssueFailed))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	account := storedAccount(entity.RoleUser)

	fx.accountRepo.EXPECT().FindByEmail(ctx, "a@x.com", repository.WithSecret).Return(account, nil)
	fx.hasher.EXPECT().Check("secret1", "hashed_password").Return(true)
	fx.tokenService.EXPECT().Issue(account.ID, entity.RoleUser).Return("signed-token", nil)
	fx.metrics.EXPECT().RecordAuthOperation(opLogin, service.OutcomeSuccess).Return()

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1", Role: entity.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, account.ID, output.Account.ID)
	assert.Empty(t, output.Account.PasswordHash)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx authServiceFixtures)
	}{
		{
			name: "unknown email",
			setup: func(fx authServiceFixtures) {
				fx.accountRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com", repository.WithSecret).
					Return(nil, repository.ErrAccountNotFound)
			},
		},
		{
			name: "role mismatch",
			setup: func(fx authServiceFixtures) {
				fx.accountRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com", repository.WithSecret).
					Return(storedAccount(entity.RoleCaptain), nil)
			},
		},
		{
			name: "wrong password",
			setup: func(fx authServiceFixtures) {
				fx.accountRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com", repository.WithSecret).
					Return(storedAccount(entity.RoleUser), nil)
				fx.hasher.EXPECT().Check("secret1", "hashed_password").Return(false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			tt.setup(fx)
			fx.metrics.EXPECT().RecordAuthOperation(opLogin, service.OutcomeRejected).Return()

			output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
				Email: "a@x.com", Password: "secret1", Role: entity.RoleUser,
			})

			assert.Nil(t, output)
			require.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "Invalid email or password", appErr.Message())
		})
	}
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	fx := createTestAuthService(t)
	fx.accountRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com", repository.WithSecret).
		Return(nil, errors.New("connection refused"))
	fx.metrics.EXPECT().RecordAuthOperation(opLogin, service.OutcomeError).Return()

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "secret1", Role: entity.RoleUser})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("blacklists token and publishes revocation", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		accountID := uuid.New()

		fx.blacklist.EXPECT().Add(ctx, "tok").Return(nil)
		fx.tokenService.EXPECT().Verify("tok").Return(&service.Claims{AccountID: accountID, Role: entity.RoleUser}, nil)
		fx.publisher.EXPECT().
			PublishAccountEvent(ctx, mock.MatchedBy(func(event *service.AccountEvent) bool {
				return event.Type == service.EventSessionRevoked && event.AccountID == accountID.String()
			})).
			Return(nil)
		fx.metrics.EXPECT().RecordAuthOperation(opLogout, service.OutcomeSuccess).Return()

		require.NoError(t, fx.service.Logout(ctx, &usecase.LogoutInput{Token: "tok"}))
	})

	t.Run("already blacklisted is success", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.blacklist.EXPECT().Add(ctx, "tok").Return(errors.WithStack(repository.ErrTokenAlreadyBlacklisted))
		fx.tokenService.EXPECT().Verify("tok").Return(nil, service.ErrInvalidToken)
		fx.metrics.EXPECT().RecordAuthOperation(opLogout, service.OutcomeSuccess).Return()

		require.NoError(t, fx.service.Logout(ctx, &usecase.LogoutInput{Token: "tok"}))
	})

	t.Run("missing token", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.metrics.EXPECT().RecordAuthOperation(opLogout, service.OutcomeRejected).Return()

		err := fx.service.Logout(context.Background(), &usecase.LogoutInput{})

		assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
		fx.blacklist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.blacklist.EXPECT().Add(mock.Anything, "tok").Return(errors.New("connection refused"))
		fx.metrics.EXPECT().RecordAuthOperation(opLogout, service.OutcomeError).Return()

		err := fx.service.Logout(context.Background(), &usecase.LogoutInput{Token: "tok"})

		require.Error(t, err)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	account := storedAccount(entity.RoleUser)
	account.PasswordHash = ""
	claims := &service.Claims{AccountID: account.ID, Role: entity.RoleUser}

	t.Run("valid token", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.blacklist.EXPECT().Contains(ctx, "tok").Return(false, nil)
		fx.tokenService.EXPECT().Verify("tok").Return(claims, nil)
		fx.accountRepo.EXPECT().FindByID(ctx, account.ID, repository.WithoutSecret).Return(account, nil)
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeSuccess).Return()

		got, err := fx.service.Authenticate(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("blacklisted token", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.blacklist.EXPECT().Contains(mock.Anything, "tok").Return(true, nil)
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeRejected).Return()

		_, err := fx.service.Authenticate(context.Background(), "tok")

		assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))
		fx.tokenService.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("invalid signature", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.blacklist.EXPECT().Contains(mock.Anything, "tok").Return(false, nil)
		fx.tokenService.EXPECT().Verify("tok").Return(nil, service.ErrInvalidToken)
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeRejected).Return()

		_, err := fx.service.Authenticate(context.Background(), "tok")

		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("deleted account", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.blacklist.EXPECT().Contains(mock.Anything, "tok").Return(false, nil)
		fx.tokenService.EXPECT().Verify("tok").Return(claims, nil)
		fx.accountRepo.EXPECT().FindByID(mock.Anything, account.ID, repository.WithoutSecret).
			Return(nil, repository.ErrAccountNotFound)
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeRejected).Return()

		_, err := fx.service.Authenticate(context.Background(), "tok")

		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("role mismatch", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.blacklist.EXPECT().Contains(mock.Anything, "tok").Return(false, nil)
		fx.tokenService.EXPECT().Verify("tok").Return(&service.Claims{AccountID: account.ID, Role: entity.RoleCaptain}, nil)
		fx.accountRepo.EXPECT().FindByID(mock.Anything, account.ID, repository.WithoutSecret).Return(account, nil)
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeRejected).Return()

		_, err := fx.service.Authenticate(context.Background(), "tok")

		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})

	t.Run("blacklist unavailable", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.blacklist.EXPECT().Contains(mock.Anything, "tok").Return(false, errors.New("timeout"))
		fx.metrics.EXPECT().RecordAuthOperation(opAuthenticate, service.OutcomeError).Return()

		_, err := fx.service.Authenticate(context.Background(), "tok")

		require.Error(t, err)
		assert.False(t, errors.Is(err, domainerrors.ErrUnauthorized))
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	fx := createTestAuthService(t)
	account := storedAccount(entity.RoleUser)

	got, err := fx.service.GetProfile(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = fx.service.GetProfile(context.Background(), nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
