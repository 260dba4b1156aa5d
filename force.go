package forcelayout

import "github.com/onnwee/forcelayout/internal/rng"

// Force is one contribution to the velocity of every particle during a
// tick. Apply receives the simulation's current cooling factor, its
// shared random source (for jiggle), and the full particle slice; it
// mutates particle velocities in place.
type Force interface {
	Apply(alpha float64, rnd *rng.LCG, particles []*Particle)
}

// Initializer is implemented by forces that need a one-time setup pass
// over the particle set when they are registered (Link computes
// per-edge degree bias this way).
type Initializer interface {
	Initialize(particles []*Particle)
}

// NodeFn computes a per-particle scalar (strength, target, radius)
// from that particle's Index. Use Constant for a uniform value.
type NodeFn func(index int) float64

// Constant returns a NodeFn that ignores its argument and always
// returns v.
func Constant(v float64) NodeFn {
	return func(int) float64 { return v }
}

// forceMap is a name-keyed bag of forces that iterates in the order
// names were first inserted, regardless of later overwrites — the
// semantics of a JavaScript Map, not a Go map (unordered) or a
// sorted-by-key tree.
type forceMap struct {
	order  []string
	byName map[string]Force
}

func newForceMap() *forceMap {
	return &forceMap{byName: make(map[string]Force)}
}

func (m *forceMap) set(name string, f Force) {
	if _, exists := m.byName[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byName[name] = f
}

func (m *forceMap) remove(name string) {
	if _, exists := m.byName[name]; !exists {
		return
	}
	delete(m.byName, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *forceMap) each(fn func(name string, f Force)) {
	for _, n := range m.order {
		fn(n, m.byName[n])
	}
}
