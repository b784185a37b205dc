package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер всех prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec
	DBConnectionsIdle *prometheus.GaugeVec
	DBConnectionsUsed *prometheus.GaugeVec

	// Движок назначений
	PlacementOutcomes  *prometheus.CounterVec
	SweepAssignedTotal prometheus.Counter
	ForceCancelsTotal  prometheus.Counter
}

// New создает и регистрирует метрики сервиса в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsUsed: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		PlacementOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_placement_outcomes_total",
			Help:        "Booking placement outcomes by type (assigned, preempted, waiting)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SweepAssignedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sweep_bookings_assigned_total",
			Help:        "Total number of pending bookings assigned by the sweeper",
			ConstLabels: constLabels,
		}),

		ForceCancelsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "force_assign_cancelled_assignments_total",
			Help:        "Total number of assignments cancelled by manual override",
			ConstLabels: constLabels,
		}),
	}
}

// ObservePlacement инкрементирует счетчик результатов размещения
func (m *Metrics) ObservePlacement(outcome string) {
	if m == nil {
		return
	}
	m.PlacementOutcomes.WithLabelValues(outcome).Inc()
}
