package forcelayout

import (
	"context"
	"math"
	"time"

	"github.com/onnwee/forcelayout/internal/errorreporting"
	"github.com/onnwee/forcelayout/internal/layouterr"
	"github.com/onnwee/forcelayout/internal/metrics"
	"github.com/onnwee/forcelayout/internal/obslog"
	"github.com/onnwee/forcelayout/internal/rng"
	"github.com/onnwee/forcelayout/internal/tracing"
)

// Node describes one particle's initial placement. The zero value
// leaves placement to the simulation's default phyllotaxis spiral.
type Node struct {
	x, y             *float64
	fixedX, fixedY   *float64
}

// NewNode returns an empty Node (defaults to spiral placement).
func NewNode() *Node {
	return &Node{}
}

// Position sets a free initial position.
func (n *Node) Position(x, y float64) *Node {
	n.x, n.y = &x, &y
	return n
}

// FixedPosition pins the particle at (x, y) for the life of the
// simulation; it never accumulates velocity.
func (n *Node) FixedPosition(x, y float64) *Node {
	n.fixedX, n.fixedY = &x, &y
	return n
}

// SimulationBuilder configures a Simulation's cooling schedule and
// random seed before Build constructs its particle set.
type SimulationBuilder struct {
	alpha, alphaMin, alphaDecay, alphaTarget, velocityDecay float64
	seed                                                    uint32
}

// NewSimulationBuilder returns a SimulationBuilder with the standard
// cooling schedule: alpha=1, alphaMin=0.001, alphaTarget=0,
// velocityDecay=0.6, and alphaDecay chosen so alpha reaches alphaMin
// after about 300 ticks from a standing start.
func NewSimulationBuilder() *SimulationBuilder {
	alphaMin := 0.001
	return &SimulationBuilder{
		alpha:         1,
		alphaMin:      alphaMin,
		alphaDecay:    1 - math.Pow(alphaMin, 1.0/300),
		alphaTarget:   0,
		velocityDecay: 0.6,
	}
}

// Alpha sets the initial cooling factor.
func (b *SimulationBuilder) Alpha(a float64) *SimulationBuilder {
	b.alpha = a
	return b
}

// AlphaMin sets the threshold below which IsFinished reports true.
func (b *SimulationBuilder) AlphaMin(a float64) *SimulationBuilder {
	b.alphaMin = a
	return b
}

// AlphaDecay sets the per-step cooling rate.
func (b *SimulationBuilder) AlphaDecay(a float64) *SimulationBuilder {
	b.alphaDecay = a
	return b
}

// AlphaTarget sets the alpha value the cooling schedule decays toward.
func (b *SimulationBuilder) AlphaTarget(a float64) *SimulationBuilder {
	b.alphaTarget = a
	return b
}

// VelocityDecay sets the per-step velocity damping factor.
func (b *SimulationBuilder) VelocityDecay(v float64) *SimulationBuilder {
	b.velocityDecay = v
	return b
}

// Seed sets the LCG seed driving jiggle across every force. Two
// simulations built with the same seed and the same sequence of
// AddForce calls produce bit-identical position sequences.
func (b *SimulationBuilder) Seed(seed uint32) *SimulationBuilder {
	b.seed = seed
	return b
}

func initialPosition(index int) (radius, angle float64) {
	radius = 10 * math.Sqrt(0.5+float64(index))
	angle = float64(index) * math.Pi * (3 - math.Sqrt(5))
	return
}

// Build constructs a Simulation with one particle per node. A node
// with FixedPosition set produces a fixed particle; a node with
// Position set produces a free particle starting there; a nil or empty
// node falls back to the phyllotaxis spiral placement.
func (b *SimulationBuilder) Build(nodes []*Node) *Simulation {
	particles := make([]*Particle, len(nodes))
	for i, nd := range nodes {
		p := &Particle{Index: i}
		switch {
		case nd != nil && nd.fixedX != nil:
			fx, fy := *nd.fixedX, *nd.fixedY
			p.X, p.Y = fx, fy
			p.FX, p.FY = &fx, &fy
		case nd != nil && nd.x != nil:
			p.X, p.Y = *nd.x, *nd.y
		default:
			r, a := initialPosition(i)
			p.X = r * math.Cos(a)
			p.Y = r * math.Sin(a)
		}
		particles[i] = p
	}

	metrics.ActiveSimulations.Inc()
	return &Simulation{
		particles:     particles,
		forces:        newForceMap(),
		alpha:         b.alpha,
		alphaMin:      b.alphaMin,
		alphaDecay:    b.alphaDecay,
		alphaTarget:   b.alphaTarget,
		velocityDecay: b.velocityDecay,
		rnd:           rng.New(b.seed),
	}
}

// BuildN is a convenience for Build with n automatically-placed
// particles (no fixed positions, no explicit initial positions).
func (b *SimulationBuilder) BuildN(n int) *Simulation {
	nodes := make([]*Node, n)
	return b.Build(nodes)
}

// Simulation holds a particle set, an insertion-ordered bag of forces,
// and the cooling schedule that drives Step.
type Simulation struct {
	particles []*Particle
	forces    *forceMap

	alpha, alphaMin, alphaDecay, alphaTarget, velocityDecay float64
	rnd                                                     *rng.LCG
	finished                                                bool
}

// AddForce registers f under name, initializing it against the current
// particle set if it implements Initializer. Re-registering an
// existing name replaces the force without changing its position in
// iteration order. The name must not be empty.
func (s *Simulation) AddForce(name string, f Force) *Simulation {
	if name == "" {
		panic(layouterr.New(layouterr.ErrSimulationEmptyForceName, "force name must not be empty"))
	}
	if init, ok := f.(Initializer); ok {
		init.Initialize(s.particles)
	}
	s.forces.set(name, f)
	obslog.WithComponent("simulation").Debug("force registered", "name", name)
	return s
}

// RemoveForce unregisters the force under name, a no-op if absent.
func (s *Simulation) RemoveForce(name string) {
	s.forces.remove(name)
	obslog.WithComponent("simulation").Debug("force removed", "name", name)
}

// IsFinished reports whether alpha has decayed to or below alphaMin.
func (s *Simulation) IsFinished() bool {
	return s.alpha <= s.alphaMin
}

// Step runs one tick: cools alpha, applies every registered force in
// insertion order, and integrates velocities into positions.
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	hasQuadtreeForce := "false"
	s.forces.each(func(name string, f Force) {
		switch f.(type) {
		case *manyBodyForce, *collideForce:
			hasQuadtreeForce = "true"
		}
	})

	tickStart := time.Now()
	s.forces.each(func(name string, f Force) {
		start := time.Now()
		f.Apply(s.alpha, s.rnd, s.particles)
		metrics.ForceApplyDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	})
	metrics.TickDuration.WithLabelValues(hasQuadtreeForce).Observe(time.Since(tickStart).Seconds())

	for _, p := range s.particles {
		p.ApplyVelocity(s.velocityDecay)
	}

	s.guardStability()

	metrics.TicksTotal.Inc()
	if !s.finished && s.IsFinished() {
		s.finished = true
		metrics.ActiveSimulations.Dec()
	}
}

// guardStability resets to 0 (with zero velocity) any coordinate a
// pathological force has driven non-finite or beyond maxCoordinate, so
// a tick never crashes the caller even when, for example, ManyBody is
// configured with an extreme strength.
func (s *Simulation) guardStability() {
	for _, p := range s.particles {
		if inBounds(p.X) && inBounds(p.Y) {
			continue
		}
		obslog.WithComponent("simulation").Warn("clamped out-of-range particle position", "index", p.Index)
		errorreporting.CaptureStabilityWarning(s.alpha, len(s.particles))
		if !inBounds(p.X) {
			p.X, p.VX = 0, 0
		}
		if !inBounds(p.Y) {
			p.Y, p.VY = 0, 0
		}
	}
}

// maxCoordinate bounds every particle coordinate after a tick. Larger
// magnitudes, though finite, would overflow the quadtree's integer
// bounding box when ManyBody or Collide next builds a tree.
const maxCoordinate = 1 << 52

// inBounds reports whether v is finite and within maxCoordinate.
func inBounds(v float64) bool {
	return math.Abs(v) <= maxCoordinate
}

// Tick runs k steps.
func (s *Simulation) Tick(k int) {
	for i := 0; i < k; i++ {
		s.Step()
	}
}

// TickTraced wraps Tick in an OpenTelemetry span, purely additive: it
// changes nothing about Tick's numeric behavior.
func (s *Simulation) TickTraced(ctx context.Context, k int) {
	_, span := tracing.StartTickSpan(ctx, k, s.alpha, len(s.particles))
	defer span.End()
	s.Tick(k)
}

// SetAlpha overrides the current cooling factor, e.g. to reheat a
// finished simulation.
func (s *Simulation) SetAlpha(a float64) *Simulation {
	s.alpha = a
	return s
}

// Positions returns a snapshot of every particle's current (x, y).
func (s *Simulation) Positions() [][2]float64 {
	out := make([][2]float64, len(s.particles))
	for i, p := range s.particles {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// Iterate returns a range-over-func iterator that steps the simulation
// until IsFinished, yielding a position snapshot after every step plus
// one final snapshot once finished.
func (s *Simulation) Iterate() func(yield func([][2]float64) bool) {
	return func(yield func([][2]float64) bool) {
		for !s.IsFinished() {
			s.Step()
			if !yield(s.Positions()) {
				return
			}
		}
		yield(s.Positions())
	}
}
