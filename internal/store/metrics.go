package store

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	mutations *prometheus.CounterVec
}

// newMetrics builds the counters and registers them on reg when it is non-nil.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "designdata",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Store mutations by operation and result.",
		}, []string{"op", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.mutations)
	}
	return m
}

func (m *metrics) observe(op string, res Result) {
	m.mutations.WithLabelValues(op, res.String()).Inc()
}
