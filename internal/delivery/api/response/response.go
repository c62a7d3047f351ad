// Package response renders the JSON bodies returned by the API.
package response

import (
	"net/http"

	domainerrors "ridehail/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// MessageResponse is the body of plain acknowledgements and most errors.
type MessageResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"` // Machine-readable error code, e.g. "INVALID_CREDENTIALS"
}

// ValidationResponse lists every rejected field.
type ValidationResponse struct {
	Errors []domainerrors.FieldError `json:"errors"`
}

// AuthResponse is returned by register and login. The account is keyed by role.
type AuthResponse map[string]any

// NewAuthResponse builds {"token": ..., "<key>": account}.
func NewAuthResponse(token, key string, account any) AuthResponse {
	return AuthResponse{"token": token, key: account}
}

// Success writes data as the response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes {"message": message}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error writes {"message": message, "code": errorCode}.
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message, Code: errorCode})
}

// ValidationFailed writes a 400 with the per-field errors.
func ValidationFailed(c echo.Context, fields []domainerrors.FieldError) error {
	if fields == nil {
		fields = []domainerrors.FieldError{}
	}

	return c.JSON(http.StatusBadRequest, ValidationResponse{Errors: fields})
}

// BindingError returns a 400 for bodies that cannot be decoded
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, domainerrors.ErrInvalidInput.ErrorCode(), message)
}
