package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ridehail/config"
	apimiddleware "ridehail/internal/delivery/api/middleware"
	"ridehail/internal/delivery/api/router"
	"ridehail/internal/delivery/api/router/handler"
	"ridehail/internal/infra/auth"
	"ridehail/internal/infra/metrics"
	"ridehail/internal/infra/persistence/postgres"
	"ridehail/internal/infra/pubsub"
	"ridehail/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newFlowServer wires the real service stack over an in-memory SQLite database.
func newFlowServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := newTestConfig(true)
	cfg.SecretKey.Access = "flow-test-secret"
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Blacklist = &config.BlacklistConfig{
		Backend: config.BlacklistBackendPostgres,
		TTL:     24 * time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(context.Background(), db))

	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: log,
	})
	require.NoError(t, err)

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	registry := metrics.NewRegistry(cfg)
	authUC := impl.NewAuthService(impl.AuthServiceParams{
		AccountRepo:  postgres.NewAccountRepository(db),
		Blacklist:    postgres.NewBlacklistRepository(db, cfg),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Publisher:    publisher,
		Metrics:      metrics.NewAuthMetrics(registry),
		Logger:       log,
	})

	return NewEcho(cfg, log, router.RouterParams{
		AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{
			AuthUC: authUC,
			Config: cfg,
			Logger: log,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			AuthUC: authUC,
			Config: cfg,
		}),
		Metrics: registry,
	})
}

func call(e *echo.Echo, method, path, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	s := &testServer{echo: e}

	return s.do(method, path, body, opts...)
}

func TestFlow_RiderSessionLifecycle(t *testing.T) {
	e := newFlowServer(t)

	rec := call(e, http.MethodPost, "/users/register",
		`{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret1")

	rec = call(e, http.MethodPost, "/users/register",
		`{"firstName":"Alice","email":"alice@example.com","password":"another1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decodeBody(t, rec)["message"])

	rec = call(e, http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["message"])

	rec = call(e, http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, "token")
	require.NotNil(t, cookie)
	token := cookie.Value

	rec = call(e, http.MethodGet, "/users/profile", "", withCookie(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", decodeBody(t, rec)["email"])

	rec = call(e, http.MethodPost, "/users/logout", "", withBearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out", decodeBody(t, rec)["message"])

	rec = call(e, http.MethodGet, "/users/profile", "", withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodPost, "/users/logout", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No token found", decodeBody(t, rec)["message"])

	rec = call(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	metricsBody := rec.Body.String()
	assert.Contains(t, metricsBody, `ridehail_auth_operations_total{operation="register",outcome="success"} 1`)
	assert.Contains(t, metricsBody, `ridehail_auth_operations_total{operation="register",outcome="rejected"} 1`)
	assert.Contains(t, metricsBody, `ridehail_auth_operations_total{operation="logout",outcome="success"} 1`)
}

func TestFlow_CaptainAndRiderAreSeparated(t *testing.T) {
	e := newFlowServer(t)

	rec := call(e, http.MethodPost, "/captains/register", `{
		"firstName":"Carol","email":"carol@example.com","password":"secret1",
		"vehicle":{"color":"red","plate":"ABC123","capacity":4,"vehicleType":"car"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	token, ok := body["token"].(string)
	require.True(t, ok)
	captain, ok := body["captain"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "captain", captain["role"])

	// Email is unique across both roles.
	rec = call(e, http.MethodPost, "/users/register",
		`{"firstName":"Carol","email":"carol@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(e, http.MethodPost, "/users/login", `{"email":"carol@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/users/profile", "", withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/captains/profile", "", withCookie(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"status":"inactive"`))
}
