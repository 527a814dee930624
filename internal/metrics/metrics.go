package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundilink",
			Name:      "api_requests_total",
			Help:      "REST calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	rollbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundilink",
			Name:      "optimistic_rollbacks_total",
			Help:      "Optimistic updates reverted after a failed request.",
		},
		[]string{"store"},
	)

	notices = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundilink",
			Name:      "notices_total",
			Help:      "User-facing notices by severity.",
		},
		[]string{"severity"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, rollbacks, notices)
	})
}

// IncAPIRequest increments the request counter for an endpoint/outcome pair.
func IncAPIRequest(endpoint, outcome string) {
	apiRequests.WithLabelValues(endpoint, outcome).Inc()
}

// IncRollback increments the rollback counter for a store.
func IncRollback(store string) {
	rollbacks.WithLabelValues(store).Inc()
}

// IncNotice increments the notice counter for a severity.
func IncNotice(severity string) {
	notices.WithLabelValues(severity).Inc()
}
