package forcelayout

import (
	"math"

	"github.com/onnwee/forcelayout/internal/rng"
)

// Edge is a link between two particles, referenced by Particle.Index.
type Edge struct {
	Source, Target int
}

// LinkBuilder configures a Link force — a spring pulling each edge's
// endpoints toward a target distance, with the pull split between the
// endpoints in inverse proportion to how connected each one is.
type LinkBuilder struct {
	edges      []Edge
	distanceFn func(Edge) float64
	strengthFn func(Edge) float64
	iterations int
}

// NewLink returns a LinkBuilder over the given edges with the default
// distance (30) and default degree-based strength, run for a single
// iteration per tick.
func NewLink(edges []Edge) *LinkBuilder {
	return &LinkBuilder{
		edges:      edges,
		distanceFn: func(Edge) float64 { return 30 },
		iterations: 1,
	}
}

// Distance sets the per-edge rest-length function.
func (b *LinkBuilder) Distance(fn func(Edge) float64) *LinkBuilder {
	b.distanceFn = fn
	return b
}

// DistanceConstant sets a uniform rest length.
func (b *LinkBuilder) DistanceConstant(d float64) *LinkBuilder {
	return b.Distance(func(Edge) float64 { return d })
}

// Strength overrides the default degree-based strength function
// (1/min(deg(source), deg(target))).
func (b *LinkBuilder) Strength(fn func(Edge) float64) *LinkBuilder {
	b.strengthFn = fn
	return b
}

// Iterations sets how many relaxation passes run per tick.
func (b *LinkBuilder) Iterations(n int) *LinkBuilder {
	b.iterations = n
	return b
}

// Build returns the configured Force. Call Initialize (done
// automatically by Simulation.AddForce) before the first Apply so
// per-edge bias and default strength are computed from the edge set's
// degree distribution.
func (b *LinkBuilder) Build() *linkForce {
	return &linkForce{
		edges:      b.edges,
		distanceFn: b.distanceFn,
		strengthFn: b.strengthFn,
		iterations: b.iterations,
	}
}

type linkForce struct {
	edges      []Edge
	distanceFn func(Edge) float64
	strengthFn func(Edge) float64
	iterations int

	bias     []float64
	strength []float64
}

// Initialize computes, for every edge, the bias fraction (how much of
// the correction lands on the source vs. the target, weighted by
// relative degree) and the default strength (1/min(deg)) when no
// explicit strength function was given.
func (f *linkForce) Initialize(particles []*Particle) {
	count := make(map[int]int, len(particles))
	for _, e := range f.edges {
		count[e.Source]++
		count[e.Target]++
	}

	f.bias = make([]float64, len(f.edges))
	f.strength = make([]float64, len(f.edges))
	for i, e := range f.edges {
		cs, ct := float64(count[e.Source]), float64(count[e.Target])
		f.bias[i] = cs / (cs + ct)
		if f.strengthFn != nil {
			f.strength[i] = f.strengthFn(e)
		} else {
			f.strength[i] = 1 / math.Min(cs, ct)
		}
	}
}

func (f *linkForce) Apply(alpha float64, rnd *rng.LCG, particles []*Particle) {
	for iter := 0; iter < f.iterations; iter++ {
		for i, e := range f.edges {
			if e.Source == e.Target {
				continue
			}
			sp, tp := particles[e.Source], particles[e.Target]

			dx := tp.X + tp.VX - sp.X - sp.VX
			dy := tp.Y + tp.VY - sp.Y - sp.VY
			if dx == 0 {
				dx = rng.Jiggle(rnd)
			}
			if dy == 0 {
				dy = rng.Jiggle(rnd)
			}

			l := math.Hypot(dx, dy)
			lam := (l - f.distanceFn(e)) / l * alpha * f.strength[i]
			dx *= lam
			dy *= lam

			b := f.bias[i]
			tp.VX -= dx * b
			tp.VY -= dy * b
			sp.VX += dx * (1 - b)
			sp.VY += dy * (1 - b)
		}
	}
}
