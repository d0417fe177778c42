package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/certen/ledger-core/protocol"
)

// Metrics tracks worker-pool occupancy and per-method request counts,
// grounded on the custom-registry + gauge/counter idiom in
// orbas1-Synnergy's system_health_logging.go's HealthLogger.
type Metrics struct {
	registry       *prometheus.Registry
	activeWorkers  prometheus.Gauge
	requestsByKind *prometheus.CounterVec
	errorsByKind   *prometheus.CounterVec
}

// NewMetrics registers and returns a fresh Metrics on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	activeWorkers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ledger_server_active_workers",
		Help: "Number of requests currently being handled.",
	})
	requestsByKind := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_server_requests_total",
		Help: "Total requests routed, by method.",
	}, []string{"method"})
	errorsByKind := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_server_errors_total",
		Help: "Total requests that resulted in an error response, by method.",
	}, []string{"method"})

	reg.MustRegister(activeWorkers, requestsByKind, errorsByKind)

	return &Metrics{
		registry:       reg,
		activeWorkers:  activeWorkers,
		requestsByKind: requestsByKind,
		errorsByKind:   errorsByKind,
	}
}

// Registry exposes the Metrics' Prometheus registry, e.g. for
// promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) workerStarted() {
	m.activeWorkers.Inc()
}

func (m *Metrics) workerFinished() {
	m.activeWorkers.Dec()
}

func (m *Metrics) observe(method protocol.Method, resp protocol.Response, err error) {
	m.requestsByKind.WithLabelValues(method.String()).Inc()
	if err != nil || resp.IsError() {
		m.errorsByKind.WithLabelValues(method.String()).Inc()
	}
}
