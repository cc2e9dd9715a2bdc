// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
)

const namespace = "logbook"

var _ logbook.VerificationRecorder = (*Metrics)(nil)

// Metrics agrupa los colectores; cada instancia registra en su propio registry.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	Verifications       *prometheus.CounterVec
	VerifyDuration      prometheus.Histogram
	StockDeductions     *prometheus.CounterVec
}

// New crea y registra los colectores. withRuntime agrega los de proceso y Go (se omite en tests).
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Verificaciones de bitácora por resultado.",
		}, []string{"outcome"}),
		VerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_duration_seconds",
			Help:      "Duración de la transacción de verificación.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		StockDeductions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_deductions_total",
			Help:      "Descuentos de stock aplicados por estado resultante.",
		}, []string{"status"}),
	}
	m.Registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.Verifications,
		m.VerifyDuration,
		m.StockDeductions,
	)
	if withRuntime {
		m.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveVerification cuenta el resultado; la duración solo se registra para verificaciones exitosas.
func (m *Metrics) ObserveVerification(outcome string, elapsed time.Duration) {
	m.Verifications.WithLabelValues(outcome).Inc()
	if outcome == logbook.OutcomeVerified {
		m.VerifyDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) ObserveStockDeduction(status entity.StockStatus) {
	m.StockDeductions.WithLabelValues(string(status)).Inc()
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
