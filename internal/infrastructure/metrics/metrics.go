package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsListed  prometheus.Counter
	TransactionsCreated prometheus.Counter
	FallbackServes      prometheus.Counter
	RemoteFailures      *prometheus.CounterVec

	// Cashback metrics
	CashbackReconciliations prometheus.Counter
	CashbackClamps          *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsListed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_transactions_listed_total",
			Help: "Total number of transaction list requests served",
		}),
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_transactions_created_total",
			Help: "Total number of transactions recorded",
		}),
		FallbackServes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_fallback_serves_total",
			Help: "Total number of reads answered from the in-memory fallback",
		}),
		RemoteFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moneybook_remote_failures_total",
			Help: "Total number of remote store failures by operation",
		}, []string{"operation"}),
		CashbackReconciliations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_cashback_reconciliations_total",
			Help: "Total number of cashback reconciliations",
		}),
		CashbackClamps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moneybook_cashback_clamps_total",
			Help: "Total number of cashback inputs clamped to a cap by field",
		}, []string{"field"}),
	}
}
