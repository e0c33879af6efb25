package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the instrumentation layer.
type Metrics struct {
	notifications *prometheus.CounterVec
	overrides     prometheus.Counter
	suppressed    prometheus.Counter
	patched       *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg. Pass
// prometheus.DefaultRegisterer for the usual global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canary_notifications_total",
				Help: "Hub notifications dispatched, by scope and event type.",
			},
			[]string{"scope", "event"},
		),
		overrides: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canary_overrides_total",
			Help: "Notifications where a subscriber returned an override.",
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canary_suppressed_notifications_total",
			Help: "Notifications skipped because the reentrancy guard was active.",
		}),
		patched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canary_patched_members_total",
				Help: "Members wrapped by the patch engine, by kind.",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.notifications, m.overrides, m.suppressed, m.patched)
	return m
}

// PatchApplied records one wrapper installation. Called by the patch engine;
// nil-safe so the engine never has to branch on telemetry being configured.
func (m *Metrics) PatchApplied(kind string) {
	if m == nil {
		return
	}
	m.patched.WithLabelValues(kind).Inc()
}
