package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridehail/config"
	"ridehail/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMetrics_RecordAuthOperation(t *testing.T) {
	reg := NewRegistry(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}})
	recorder := NewAuthMetrics(reg)

	recorder.RecordAuthOperation("login", service.OutcomeSuccess)
	recorder.RecordAuthOperation("login", service.OutcomeSuccess)
	recorder.RecordAuthOperation("login", service.OutcomeRejected)

	counter := recorder.(*authMetrics).operations
	assert.InDelta(t, 2, testutil.ToFloat64(counter.WithLabelValues("login", service.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(counter.WithLabelValues("login", service.OutcomeRejected)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(counter.WithLabelValues("register", service.OutcomeError)), 0)
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}})
	NewAuthMetrics(reg).RecordAuthOperation("logout", service.OutcomeSuccess)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ridehail_auth_operations_total{operation="logout",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRegistry_EnabledFlag(t *testing.T) {
	assert.False(t, NewRegistry(&config.Config{}).Enabled)
	assert.False(t, NewRegistry(&config.Config{Metrics: &config.MetricsConfig{}}).Enabled)
	assert.True(t, NewRegistry(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}}).Enabled)
}
