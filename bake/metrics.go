package bake

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors updated by a Registry. A nil
// *Metrics records nothing.
type Metrics struct {
	Lookups     *prometheus.CounterVec
	ModuleLoads *prometheus.CounterVec
	CachedTypes prometheus.Gauge
}

// NewMetrics creates the registry collectors and registers them with reg
// when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsonbake",
				Name:      "registry_lookups_total",
				Help:      "Total number of converter lookups by cache outcome",
			},
			[]string{"cache"},
		),
		ModuleLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsonbake",
				Name:      "registry_module_loads_total",
				Help:      "Total number of module table builds by result",
			},
			[]string{"result"},
		),
		CachedTypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jsonbake",
				Name:      "registry_cached_types",
				Help:      "Number of types with a cached lookup result",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.ModuleLoads, m.CachedTypes)
	}
	return m
}

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.Lookups.WithLabelValues("hit").Inc()
		return
	}
	m.Lookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) moduleLoad(found bool) {
	if m == nil {
		return
	}
	if found {
		m.ModuleLoads.WithLabelValues("loaded").Inc()
		return
	}
	m.ModuleLoads.WithLabelValues("absent").Inc()
}

func (m *Metrics) cached() {
	if m == nil {
		return
	}
	m.CachedTypes.Inc()
}
