package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	ExpensesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "expenses_recorded_total",
			Help: "Total expenses inserted into the ledger",
		},
	)

	// Expense inserted but balance debit failed afterwards.
	PartialFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "expense_partial_failures_total",
			Help: "Expenses recorded whose balance debit failed",
		},
	)

	// 1 once the balance store has downgraded to local fallback storage.
	FallbackMode = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "balance_fallback_mode",
			Help: "Whether balances are persisted to local fallback storage",
		},
	)

	FeedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_feed_events_total",
			Help: "Change feed notifications received",
		},
		[]string{"op"},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ExpensesRecorded)
	prometheus.MustRegister(PartialFailures)
	prometheus.MustRegister(FallbackMode)
	prometheus.MustRegister(FeedEvents)
	prometheus.MustRegister(WorkerQueueDepth)
}
