package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Unlock outcome label values.
const (
	outcomeSuccess      = "success"
	outcomeAlready      = "already"
	outcomeInsufficient = "insufficient_funds"
	outcomePartial      = "partial"
	outcomeError        = "error"
)

type unlockMetrics struct {
	registerOnce sync.Once
	outcomes     *prometheus.CounterVec
}

// Register creates the collectors on registry. A nil registry leaves the
// metrics disabled.
func (m *unlockMetrics) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}
	m.registerOnce.Do(func() {
		m.outcomes = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "talentledger_unlock_attempts_total",
			Help: "Unlock attempts by outcome",
		}, []string{"outcome"})
	})
}

func (m *unlockMetrics) inc(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}
