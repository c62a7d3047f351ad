package middleware

import (
	"log/slog"

	deliverycontext "ridehail/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID reuses the client's X-Request-Id or generates one, echoes it on the
// response, and stores it with a tagged logger in the request context.
func RequestID(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: echo.HeaderXRequestID,
		RequestIDHandler: func(c echo.Context, requestID string) {
			c.Set(string(deliverycontext.KeyRequestID), requestID)

			req := c.Request()
			c.SetRequest(req.WithContext(deliverycontext.WithRequest(req.Context(), requestID, logger)))
		},
	})
}
