// Package metrics exposes Prometheus instrumentation for the auth service.
package metrics

import (
	"net/http"

	"ridehail/config"
	"ridehail/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Registry owns the collectors served on /metrics.
// Enabled is false when metrics are switched off in configuration.
type Registry struct {
	*prometheus.Registry

	Enabled bool
}

// NewRegistry creates an isolated registry with the Go and process collectors.
func NewRegistry(cfg *config.Config) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		Registry: reg,
		Enabled:  cfg.Metrics != nil && cfg.Metrics.Enabled,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}

type authMetrics struct {
	operations *prometheus.CounterVec
}

// NewAuthMetrics registers the auth operation counter on the registry.
func NewAuthMetrics(reg *Registry) service.AuthMetrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridehail_auth_operations_total",
			Help: "Total number of auth operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
	reg.MustRegister(operations)

	return &authMetrics{operations: operations}
}

// RecordAuthOperation increments the counter for one completed operation.
func (m *authMetrics) RecordAuthOperation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRegistry, NewAuthMetrics),
)
