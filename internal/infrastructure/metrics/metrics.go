package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FinancingMetrics covers the provider-facing call surface: transfers,
// applications and prescreens.
type FinancingMetrics struct {
	TransfersTotal       prometheus.CounterVec
	TransfersAmountTotal prometheus.CounterVec

	ApplicationsTotal prometheus.CounterVec

	PrequalsTotal prometheus.CounterVec

	GatewayCallDuration prometheus.HistogramVec
	GatewayErrorsTotal  prometheus.CounterVec

	PaymentAttemptsTotal     prometheus.CounterVec
	CompensatingCancelsTotal prometheus.CounterVec

	TokenRefreshesTotal prometheus.CounterVec
}

func NewFinancingMetrics() *FinancingMetrics {
	return &FinancingMetrics{
		TransfersTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_transfers_total",
				Help: "Total transfer attempts by transaction type and result status",
			},
			[]string{"type", "status"},
		),

		TransfersAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_transfers_amount_total",
				Help: "Total transferred amount by transaction type and result status",
			},
			[]string{"type", "status"},
		),

		ApplicationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_applications_total",
				Help: "Total credit application submissions by variant and outcome",
			},
			[]string{"variant", "status"},
		),

		PrequalsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_prequals_total",
				Help: "Total pre-qualification prescreens by outcome",
			},
			[]string{"status"},
		),

		GatewayCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "financing_gateway_call_duration_seconds",
				Help:    "Provider gateway call duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"path"},
		),

		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_gateway_errors_total",
				Help: "Provider gateway failures by path and error class",
			},
			[]string{"path", "error_type"},
		),

		PaymentAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_payment_attempts_total",
				Help: "Payment authorization attempts by attempt number and outcome",
			},
			[]string{"attempt", "outcome"},
		),

		CompensatingCancelsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_compensating_cancels_total",
				Help: "Speculative cancel-authorization calls issued after transport timeouts",
			},
			[]string{"outcome"},
		),

		TokenRefreshesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financing_token_refreshes_total",
				Help: "Gateway bearer token refreshes by trigger",
			},
			[]string{"trigger"},
		),
	}
}

func (m *FinancingMetrics) RecordTransfer(transactionType, status string, amount float64) {
	m.TransfersTotal.WithLabelValues(transactionType, status).Inc()
	m.TransfersAmountTotal.WithLabelValues(transactionType, status).Add(amount)
}

func (m *FinancingMetrics) RecordApplication(variant, status string) {
	m.ApplicationsTotal.WithLabelValues(variant, status).Inc()
}

func (m *FinancingMetrics) RecordPrequal(status string) {
	m.PrequalsTotal.WithLabelValues(status).Inc()
}

func (m *FinancingMetrics) RecordGatewayCall(path string, durationSeconds float64) {
	m.GatewayCallDuration.WithLabelValues(path).Observe(durationSeconds)
}

func (m *FinancingMetrics) RecordGatewayError(path, errorType string) {
	m.GatewayErrorsTotal.WithLabelValues(path, errorType).Inc()
}

func (m *FinancingMetrics) RecordPaymentAttempt(attempt, outcome string) {
	m.PaymentAttemptsTotal.WithLabelValues(attempt, outcome).Inc()
}

func (m *FinancingMetrics) RecordCompensatingCancel(outcome string) {
	m.CompensatingCancelsTotal.WithLabelValues(outcome).Inc()
}

func (m *FinancingMetrics) RecordTokenRefresh(trigger string) {
	m.TokenRefreshesTotal.WithLabelValues(trigger).Inc()
}
