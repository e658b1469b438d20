package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	RecipientAdmin    = "admin"
	RecipientCustomer = "customer"
)

// RelayMetrics records order relay outcomes and per-recipient delivery stats.
type RelayMetrics struct {
	orders   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewRelayMetrics registers the relay metrics on the provided registerer.
func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	if reg == nil {
		return &RelayMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_relayed_total",
		Help: "Order relay attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notification_delivery_seconds",
		Help:    "Duration of notification deliveries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"recipient"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_delivery_failures_total",
		Help: "Failed notification deliveries.",
	}, []string{"recipient"})
	reg.MustRegister(orders, duration, failures)
	return &RelayMetrics{
		orders:   orders,
		duration: duration,
		failures: failures,
	}
}

// IncOrder counts one relay attempt with the given outcome.
func (m *RelayMetrics) IncOrder(outcome string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDelivery records the duration of one delivery and counts it as a
// failure when failed is set.
func (m *RelayMetrics) ObserveDelivery(recipient string, duration time.Duration, failed bool) {
	if m == nil || m.duration == nil {
		return
	}
	recipient = normalizeLabel(recipient)
	m.duration.WithLabelValues(recipient).Observe(duration.Seconds())
	if failed {
		m.failures.WithLabelValues(recipient).Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
