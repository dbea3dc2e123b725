// Package metrics exposes search activity as Prometheus process metrics,
// served by cmd/enginecli's optional debug HTTP listener. Nothing in
// uci.Driver depends on this package directly; the engine binary reads
// each SearchResult and reports it here.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of gauges/counters the engine process publishes.
type Metrics struct {
	NodesTotal  prometheus.Counter
	NodesPerSec prometheus.Gauge
	LastDepth   prometheus.Gauge
	Searches    prometheus.Counter
}

// New registers and returns a fresh Metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chess_engine",
			Name:      "nodes_total",
			Help:      "Total leaf nodes evaluated across all searches.",
		}),
		NodesPerSec: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chess_engine",
			Name:      "nodes_per_second",
			Help:      "Nodes evaluated per second in the most recently completed iteration.",
		}),
		LastDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chess_engine",
			Name:      "last_search_depth",
			Help:      "Deepest iterative-deepening depth completed by the most recent search.",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chess_engine",
			Name:      "searches_total",
			Help:      "Total number of \"go\" commands handled.",
		}),
	}
	reg.MustRegister(m.NodesTotal, m.NodesPerSec, m.LastDepth, m.Searches)
	return m
}

// ObserveIteration updates the gauges from one completed iterative-deepening
// iteration: nodes is the cumulative node count for the search so far,
// elapsed the wall-clock time since the search began.
func (m *Metrics) ObserveIteration(nodes uint64, depth int, elapsed time.Duration) {
	m.LastDepth.Set(float64(depth))
	if elapsed > 0 {
		m.NodesPerSec.Set(float64(nodes) / elapsed.Seconds())
	}
}

// ObserveSearchStart records that a new "go" command began.
func (m *Metrics) ObserveSearchStart() {
	m.Searches.Inc()
}

// AddNodes increments the cumulative node counter by delta.
func (m *Metrics) AddNodes(delta uint64) {
	m.NodesTotal.Add(float64(delta))
}
