package metrics

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records payment, sale and leaderboard signals for Prometheus.
type Metrics struct {
	paymentsSubmitted    *prometheus.CounterVec
	paymentTransitions   *prometheus.CounterVec
	receiptCompensations *prometheus.CounterVec
	salesSubmitted       prometheus.Counter
	saleReviews          *prometheus.CounterVec
	aggregationDuration  prometheus.Histogram
	aggregationAgents    prometheus.Gauge
}

// New registers the back office collectors with registerer. A nil registerer
// uses prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		paymentsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "omniportal_payments_submitted_total",
			Help: "Payments submitted by clients, by VAT classification.",
		}, []string{"vat"}),
		paymentTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "omniportal_payment_transitions_total",
			Help: "Administrator actions applied to payments.",
		}, []string{"action", "status"}),
		receiptCompensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "omniportal_receipt_compensations_total",
			Help: "Orphaned receipt deletions after a failed record write.",
		}, []string{"bucket", "result"}),
		salesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "omniportal_sales_submitted_total",
			Help: "Sales recorded by agents.",
		}),
		saleReviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "omniportal_sale_reviews_total",
			Help: "Sales confirmed or rejected by administrators.",
		}, []string{"status"}),
		aggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "omniportal_leaderboard_aggregation_seconds",
			Help:    "Time to read agents and confirmed sales and rank them.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		aggregationAgents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "omniportal_leaderboard_active_agents",
			Help: "Active agents ranked by the most recent aggregation.",
		}),
	}

	registerer.MustRegister(
		m.paymentsSubmitted,
		m.paymentTransitions,
		m.receiptCompensations,
		m.salesSubmitted,
		m.saleReviews,
		m.aggregationDuration,
		m.aggregationAgents,
	)
	return m
}

// PaymentSubmitted counts a new payment.
func (m *Metrics) PaymentSubmitted(_ context.Context, _ domain.Actor, p domain.Payment) {
	m.paymentsSubmitted.WithLabelValues(string(p.VAT)).Inc()
}

// PaymentTransitioned counts an administrator action.
func (m *Metrics) PaymentTransitioned(_ context.Context, _ domain.Actor, p domain.Payment, action domain.PaymentAction) {
	m.paymentTransitions.WithLabelValues(string(action), string(p.Status)).Inc()
}

// ReceiptCompensated counts compensating deletes and whether they succeeded.
func (m *Metrics) ReceiptCompensated(_ context.Context, bucket string, err error) {
	result := "deleted"
	if err != nil {
		result = "failed"
	}
	m.receiptCompensations.WithLabelValues(bucket, result).Inc()
}

// SaleSubmitted counts a new sale.
func (m *Metrics) SaleSubmitted(context.Context, domain.Actor, domain.Sale) {
	m.salesSubmitted.Inc()
}

// SaleReviewed counts a confirmation or rejection.
func (m *Metrics) SaleReviewed(_ context.Context, _ domain.Actor, s domain.Sale) {
	m.saleReviews.WithLabelValues(string(s.Status)).Inc()
}

// AggregationCompleted observes one leaderboard computation.
func (m *Metrics) AggregationCompleted(_ context.Context, elapsed time.Duration, agents int, _ int) {
	m.aggregationDuration.Observe(elapsed.Seconds())
	m.aggregationAgents.Set(float64(agents))
}
