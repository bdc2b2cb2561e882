package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkweld", Name: "store_mutations_total", Help: "Number of document store mutations by operation."},
		[]string{"op"},
	)
	PersistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkweld", Name: "persist_failures_total", Help: "Number of failed snapshot writes by slot backend."},
		[]string{"backend"},
	)
	ShareDecodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkweld", Name: "share_decodes_total", Help: "Number of share token decode attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkweld", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkweld", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StoreMutations)
	reg.MustRegister(PersistFailures)
	reg.MustRegister(ShareDecodes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
