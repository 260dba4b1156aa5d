package forcelayout

import (
	"math"

	"github.com/onnwee/forcelayout/internal/quadtree"
	"github.com/onnwee/forcelayout/internal/rng"
)

// ManyBodyBuilder configures a ManyBody force — an n-body repulsion (by
// default) or attraction approximated with a Barnes-Hut quadtree so a
// tick costs O(n log n) instead of O(n^2).
type ManyBodyBuilder struct {
	strength              NodeFn
	distanceMin, distanceMax, theta float64
}

// NewManyBody returns a ManyBodyBuilder with the default repulsive
// strength (-30), a minimum distance of 1, no maximum distance cutoff,
// and the standard Barnes-Hut opening angle (theta = 0.9).
func NewManyBody() *ManyBodyBuilder {
	return &ManyBodyBuilder{
		strength:    Constant(-30),
		distanceMin: 1,
		distanceMax: math.Inf(1),
		theta:       0.9,
	}
}

// Strength sets the per-particle strength function; negative values
// repel, positive values attract.
func (b *ManyBodyBuilder) Strength(fn NodeFn) *ManyBodyBuilder {
	b.strength = fn
	return b
}

// StrengthConstant sets a uniform strength.
func (b *ManyBodyBuilder) StrengthConstant(v float64) *ManyBodyBuilder {
	return b.Strength(Constant(v))
}

// DistanceMin sets the minimum distance used in the inverse-square
// falloff, preventing the force from blowing up as particles coincide.
func (b *ManyBodyBuilder) DistanceMin(d float64) *ManyBodyBuilder {
	b.distanceMin = d
	return b
}

// DistanceMax sets the maximum distance beyond which a particle or
// quad no longer contributes any force.
func (b *ManyBodyBuilder) DistanceMax(d float64) *ManyBodyBuilder {
	b.distanceMax = d
	return b
}

// Theta sets the Barnes-Hut opening-angle criterion: a quad is treated
// as a single body once its width divided by its distance to the
// particle falls below theta.
func (b *ManyBodyBuilder) Theta(t float64) *ManyBodyBuilder {
	b.theta = t
	return b
}

// Build returns the configured Force.
func (b *ManyBodyBuilder) Build() *manyBodyForce {
	return &manyBodyForce{
		strength:     b.strength,
		distanceMin2: b.distanceMin * b.distanceMin,
		distanceMax2: b.distanceMax * b.distanceMax,
		theta2:       b.theta * b.theta,
	}
}

type charge struct {
	x, y, strength float64
}

type manyBodyForce struct {
	strength                   NodeFn
	distanceMin2, distanceMax2 float64
	theta2                     float64
}

func (f *manyBodyForce) Apply(alpha float64, rnd *rng.LCG, particles []*Particle) {
	n := len(particles)
	if n == 0 {
		return
	}

	tree := quadtree.FromPoints[charge, int](n, func(i int) (float64, float64, int) {
		return particles[i].X, particles[i].Y, i
	})

	tree.VisitAfter(func(q quadtree.Quad[charge, int]) {
		if q.IsLeaf() {
			x, y, data, others := q.Leaf()
			s := f.strength(particles[data].Index)
			for _, o := range others {
				s += f.strength(particles[o].Index)
			}
			*q.Value() = charge{x: x, y: y, strength: s}
			return
		}

		var weight, sx, sy, signed float64
		for _, c := range q.Children() {
			if c == nil {
				continue
			}
			w := math.Abs(c.strength)
			weight += w
			sx += w * c.x
			sy += w * c.y
			signed += c.strength
		}
		*q.Value() = charge{x: sx / weight, y: sy / weight, strength: signed}
	})

	for i, p := range particles {
		var vx, vy float64
		ri := i
		tree.Visit(func(q quadtree.Quad[charge, int]) quadtree.Visit {
			c := *q.Value()
			dx := c.x - p.X
			dy := c.y - p.Y
			ext := q.Extent()
			w := ext.X1 - ext.X0
			l := dx*dx + dy*dy

			if w*w/f.theta2 < l {
				if l < f.distanceMax2 {
					if dx == 0 {
						dx = rng.Jiggle(rnd)
						l += dx * dx
					}
					if dy == 0 {
						dy = rng.Jiggle(rnd)
						l += dy * dy
					}
					if l < f.distanceMin2 {
						l = math.Sqrt(f.distanceMin2 * l)
					}
					vx += dx * c.strength * alpha / l
					vy += dy * c.strength * alpha / l
				}
				return quadtree.Skip
			}

			if q.IsInternal() || l >= f.distanceMax2 {
				return quadtree.Continue
			}

			lx, ly, data, others := q.Leaf()
			candidates := make([]int, 0, 1+len(others))
			candidates = append(candidates, data)
			candidates = append(candidates, others...)

			// Every entry in a leaf shares the same coordinate (the
			// quadtree invariant that puts coincident points into one
			// leaf's overflow list), so the jiggled delta is computed
			// once per leaf and reused for each candidate, not redrawn
			// per candidate.
			ddx := lx - p.X
			ddy := ly - p.Y
			ll := ddx*ddx + ddy*ddy
			if ddx == 0 {
				ddx = rng.Jiggle(rnd)
				ll += ddx * ddx
			}
			if ddy == 0 {
				ddy = rng.Jiggle(rnd)
				ll += ddy * ddy
			}
			if ll < f.distanceMin2 {
				ll = math.Sqrt(f.distanceMin2 * ll)
			}
			for _, oi := range candidates {
				if oi == ri {
					continue
				}
				s := f.strength(particles[oi].Index)
				vx += ddx * s * alpha / ll
				vy += ddy * s * alpha / ll
			}
			return quadtree.Continue
		})
		p.VX += vx
		p.VY += vy
	}
}
