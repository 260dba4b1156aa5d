// Package metrics exposes package-level Prometheus collectors for the
// simulation lifecycle. As in the teacher's metrics package, these are
// plain promauto vars: the library never starts its own HTTP server or
// registry, it only registers collectors onto the default registry for
// an embedding application to expose however it likes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts completed simulation steps (one per Step call,
	// so Tick(k) adds k).
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forcelayout_ticks_total",
			Help: "Total number of simulation ticks executed",
		},
	)

	// TickDuration records wall-clock time per tick, labeled by whether
	// the force bag includes a quadtree-building force (ManyBody or
	// Collide), since those dominate per-tick cost.
	TickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forcelayout_tick_duration_seconds",
			Help:    "Duration of a single simulation tick",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"has_quadtree_force"},
	)

	// ForceApplyDuration records wall-clock time spent inside a single
	// registered force's kernel during one tick, labeled by force name.
	ForceApplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forcelayout_force_apply_duration_seconds",
			Help:    "Duration of a single force's contribution to a tick",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"force"},
	)

	// ActiveSimulations counts simulations that have been built but have
	// not yet reached IsFinished for the first time.
	ActiveSimulations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forcelayout_active_simulations",
			Help: "Number of simulations currently running",
		},
	)
)
