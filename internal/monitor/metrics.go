package monitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the prometheus collectors published by the engine.
type Metrics struct {
	CyclesTotal         prometheus.Counter
	TransitionsTotal    *prometheus.CounterVec
	UnhealthyContainers prometheus.Gauge
	NotifyFailures      prometheus.Counter
}

// NewMetrics creates and registers the monitor collectors on the given
// registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dockpulse_cycles_total",
			Help: "Total number of completed monitoring cycles.",
		}),
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dockpulse_transitions_total",
			Help: "Total number of status transitions detected, by kind.",
		}, []string{"kind"}),
		UnhealthyContainers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dockpulse_unhealthy_containers",
			Help: "Number of containers in a bad state as of the last cycle.",
		}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dockpulse_notify_failures_total",
			Help: "Total number of failed notification deliveries.",
		}),
	}

	registry.MustRegister(
		m.CyclesTotal,
		m.TransitionsTotal,
		m.UnhealthyContainers,
		m.NotifyFailures,
	)

	return m
}
