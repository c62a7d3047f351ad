// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"ridehail/config"
	"ridehail/internal/delivery/api/response"
	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
	Logger *slog.Logger
}

// AccountHandler serves registration, login, profile, and logout for riders and captains.
type AccountHandler struct {
	authUC       usecase.AuthUsecase
	logger       *slog.Logger
	cookieName   string
	cookieSecure bool
	cookieMaxAge time.Duration
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		authUC:       params.AuthUC,
		logger:       params.Logger,
		cookieName:   params.Config.Auth.CookieName,
		cookieSecure: params.Config.Auth.CookieSecure,
		cookieMaxAge: params.Config.Auth.TokenTTL,
	}
}

// RegisterUserRequest represents the request body for rider registration
type RegisterUserRequest struct {
	FirstName string `json:"firstName" validate:"min=3" label:"First name"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"email" label:"Email"`
	Password  string `json:"password" validate:"min=6" label:"Password"`
}

// VehicleRequest describes a captain's vehicle
type VehicleRequest struct {
	Color       string `json:"color" validate:"min=3" label:"Vehicle color"`
	Plate       string `json:"plate" validate:"min=3" label:"Vehicle plate"`
	Capacity    int    `json:"capacity" validate:"gte=1" label:"Vehicle capacity"`
	VehicleType string `json:"vehicleType" validate:"oneof=car bike auto" label:"Vehicle type"`
}

// RegisterCaptainRequest represents the request body for captain registration
type RegisterCaptainRequest struct {
	FirstName string          `json:"firstName" validate:"min=3" label:"First name"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email" validate:"email" label:"Email"`
	Password  string          `json:"password" validate:"min=6" label:"Password"`
	Vehicle   *VehicleRequest `json:"vehicle" validate:"required" label:"Vehicle"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser handles rider registration.
func (h *AccountHandler) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	return h.register(c, &usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.RoleUser,
	})
}

// RegisterCaptain handles captain registration.
func (h *AccountHandler) RegisterCaptain(c echo.Context) error {
	var req RegisterCaptainRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	return h.register(c, &usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.RoleCaptain,
		Vehicle: &entity.Vehicle{
			Color:       req.Vehicle.Color,
			Plate:       req.Vehicle.Plate,
			Capacity:    req.Vehicle.Capacity,
			VehicleType: entity.VehicleType(req.Vehicle.VehicleType),
		},
	})
}

func (h *AccountHandler) register(c echo.Context, input *usecase.RegisterInput) error {
	output, err := h.authUC.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NewAuthResponse(output.Token, input.Role.String(), output.Account))
}

// Login returns a handler that logs in an account of the given role and sets the session cookie.
func (h *AccountHandler) Login(role entity.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "Invalid login input")
		}

		output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		c.SetCookie(h.sessionCookie(output.Token))

		return response.Success(c, http.StatusOK, response.NewAuthResponse(output.Token, role.String(), output.Account))
	}
}

// GetProfile returns the authenticated account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	account, err := h.authUC.GetProfile(c.Request().Context(), deliverycontext.GetAccount(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account)
}

// Logout clears the session cookie and blacklists the presented token.
func (h *AccountHandler) Logout(c echo.Context) error {
	c.SetCookie(h.expiredCookie())

	token := deliverycontext.GetToken(c)
	if err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{Token: token}); err != nil {
		if errors.Is(err, domainerrors.ErrMissingToken) {
			h.logger.Debug("Logout without a session token")
		}

		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Logged out")
}

func (h *AccountHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AccountHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
