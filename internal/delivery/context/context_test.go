package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridehail/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestWithRequest_TagsLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithRequest(context.Background(), "req-1", base)

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	LoggerFromContext(ctx, nil).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestFromContext_OutsideRequest(t *testing.T) {
	fallback := slog.Default()

	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
}

func TestAccountAndToken(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Nil(t, GetAccount(c))
	assert.Empty(t, GetToken(c))

	account := &entity.Account{Role: entity.RoleUser}
	SetAccount(c, account)
	SetToken(c, "abc")

	assert.Same(t, account, GetAccount(c))
	assert.Equal(t, "abc", GetToken(c))
}
