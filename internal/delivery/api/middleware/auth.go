package middleware

import (
	"strings"

	"ridehail/config"
	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
}

// AuthMiddleware resolves the session token on a request to an account.
type AuthMiddleware struct {
	authUC     usecase.AuthUsecase
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC:     params.AuthUC,
		cookieName: params.Config.Auth.CookieName,
	}
}

// ExtractToken returns the session token from the cookie, falling back to the
// Authorization bearer header. The cookie wins when both are present.
func ExtractToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, bearerPrefix); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// Authenticate rejects requests without a valid, unrevoked token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ExtractToken(c, m.cookieName)
		if token == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "no session token presented")
		}

		return m.authenticate(c, token, next)
	}
}

// AuthenticateIfPresent lets anonymous requests through and validates any token that is sent.
func (m *AuthMiddleware) AuthenticateIfPresent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ExtractToken(c, m.cookieName)
		if token == "" {
			return next(c)
		}

		return m.authenticate(c, token, next)
	}
}

// RequireRole rejects accounts of another role as if they were unauthenticated.
// It must be used AFTER Authenticate or AuthenticateIfPresent; anonymous requests pass through.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := deliverycontext.GetAccount(c)
			if account == nil {
				return next(c)
			}
			if account.Role != role {
				return errors.Wrapf(domainerrors.ErrUnauthorized, "%s token used on %s route", account.Role, role)
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, token string, next echo.HandlerFunc) error {
	account, err := m.authUC.Authenticate(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	deliverycontext.SetAccount(c, account)
	deliverycontext.SetToken(c, token)

	return next(c)
}
