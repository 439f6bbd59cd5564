package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts completed evaluations by outcome.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gerald_decisions_total",
		Help: "Total credit decisions made, by outcome.",
	}, []string{"outcome"})

	// CreditLimitBucket tracks the distribution of resolved limits.
	CreditLimitBucket = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gerald_credit_limit_bucket_total",
		Help: "Resolved credit limits by dollar bucket and outcome.",
	}, []string{"bucket", "outcome"})

	// DecisionLatency observes end-to-end decision latency.
	DecisionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gerald_decision_latency_seconds",
		Help:    "Latency of the full decision flow including the bank fetch.",
		Buckets: prometheus.DefBuckets,
	})

	// BankFetchLatency observes bank transaction fetch latency.
	BankFetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gerald_bank_fetch_latency_seconds",
		Help:    "Latency of bank transaction history fetches.",
		Buckets: prometheus.DefBuckets,
	})

	// BankFetchesTotal counts bank fetch attempts by result.
	BankFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gerald_bank_fetches_total",
		Help: "Bank transaction fetches, by result.",
	}, []string{"result"})

	// WebhookDeliveriesTotal counts ledger webhook deliveries by result.
	WebhookDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gerald_webhook_deliveries_total",
		Help: "Ledger webhook delivery attempts, by event type and result.",
	}, []string{"event_type", "result"})
)

// Outcome returns the metric label for a decision outcome.
func Outcome(approved bool) string {
	if approved {
		return "approved"
	}
	return "declined"
}
