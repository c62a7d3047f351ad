package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "ridehail/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_PropagatesToRequestContext(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(nil))

	var fromCtx string
	e.GET("/", func(c echo.Context) error {
		fromCtx = deliverycontext.RequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusNoContent)
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		header := rec.Header().Get(echo.HeaderXRequestID)
		assert.NotEmpty(t, header)
		assert.Equal(t, header, fromCtx)
	})

	t.Run("from client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "client-7")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "client-7", rec.Header().Get(echo.HeaderXRequestID))
		assert.Equal(t, "client-7", fromCtx)
	})
}
