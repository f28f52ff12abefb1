// Package metrics holds the Prometheus collectors of the saga. A nil *Metrics is valid
// and records nothing, so handlers can run without a registry in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ordersTotal               *prometheus.CounterVec
	paymentChargesTotal       *prometheus.CounterVec
	kitchenOrdersPrepared     *prometheus.CounterVec
	kitchenPreparationSeconds prometheus.Histogram
	deliveriesAssignedTotal   prometheus.Counter
	deliveryTransitionsTotal  *prometheus.CounterVec
	deliverySweepSeconds      prometheus.Histogram
	messagesDroppedTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_total",
				Help: "Orders submitted to the order gate by outcome",
			},
			[]string{"status"},
		),
		paymentChargesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_charges_total",
				Help: "Charges processed by the payment gateway simulator",
			},
			[]string{"result"},
		),
		kitchenOrdersPrepared: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchen_orders_prepared_total",
				Help: "Orders prepared by kitchen instance",
			},
			[]string{"instance"},
		),
		kitchenPreparationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kitchen_preparation_seconds",
				Help:    "Simulated preparation time",
				Buckets: prometheus.LinearBuckets(1, 1, 15),
			},
		),
		deliveriesAssignedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "deliveries_assigned_total",
				Help: "Drivers assigned to ready orders",
			},
		),
		deliveryTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delivery_transitions_total",
				Help: "Delivery status transitions applied by the sweep",
			},
			[]string{"to"},
		),
		deliverySweepSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "delivery_sweep_duration_seconds",
				Help:    "Duration of one delivery sweep pass",
				Buckets: prometheus.DefBuckets,
			},
		),
		messagesDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_dropped_total",
				Help: "Messages acknowledged without being processed",
			},
			[]string{"queue"},
		),
	}

	reg.MustRegister(
		m.ordersTotal,
		m.paymentChargesTotal,
		m.kitchenOrdersPrepared,
		m.kitchenPreparationSeconds,
		m.deliveriesAssignedTotal,
		m.deliveryTransitionsTotal,
		m.deliverySweepSeconds,
		m.messagesDroppedTotal,
	)

	return m
}

func (m *Metrics) OrderSubmitted(status string) {
	if m == nil {
		return
	}
	m.ordersTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) PaymentCharged(approved bool) {
	if m == nil {
		return
	}
	result := "declined"
	if approved {
		result = "approved"
	}
	m.paymentChargesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) OrderPrepared(instance string, took time.Duration) {
	if m == nil {
		return
	}
	m.kitchenOrdersPrepared.WithLabelValues(instance).Inc()
	m.kitchenPreparationSeconds.Observe(took.Seconds())
}

func (m *Metrics) DeliveryAssigned() {
	if m == nil {
		return
	}
	m.deliveriesAssignedTotal.Inc()
}

func (m *Metrics) DeliveryTransitioned(to string) {
	if m == nil {
		return
	}
	m.deliveryTransitionsTotal.WithLabelValues(to).Inc()
}

func (m *Metrics) SweepCompleted(took time.Duration) {
	if m == nil {
		return
	}
	m.deliverySweepSeconds.Observe(took.Seconds())
}

func (m *Metrics) MessageDropped(queue string) {
	if m == nil {
		return
	}
	m.messagesDroppedTotal.WithLabelValues(queue).Inc()
}
