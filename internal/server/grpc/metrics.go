package grpc

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type rpcMetrics struct {
	registerOnce sync.Once
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// Register creates the collectors on registry. A nil registry leaves the
// metrics disabled.
func (m *rpcMetrics) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}
	m.registerOnce.Do(func() {
		factory := promauto.With(registry)
		m.requests = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talentledger_rpc_requests_total",
			Help: "Total number of marketplace RPCs by method and status code",
		}, []string{"method", "code"})
		m.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentledger_rpc_duration_seconds",
			Help:    "Marketplace RPC latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"})
	})
}

func (m *rpcMetrics) observe(method, code string, seconds float64) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(seconds)
}
