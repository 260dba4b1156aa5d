package forcelayout

import (
	"math"

	"github.com/onnwee/forcelayout/internal/quadtree"
	"github.com/onnwee/forcelayout/internal/rng"
)

// CollideBuilder configures a Collide force — a radius-based
// separation pass run through the same Barnes-Hut quadtree machinery
// as ManyBody, but pruning by bounding box against each particle's
// disc rather than by opening angle.
type CollideBuilder struct {
	strength   float64
	iterations int
	radiusFn   NodeFn
}

// NewCollide returns a CollideBuilder with strength 1.0, a single
// iteration per tick, and a uniform radius of 1.0.
func NewCollide() *CollideBuilder {
	return &CollideBuilder{strength: 1, iterations: 1, radiusFn: Constant(1)}
}

// Strength sets how much of the overlap correction is applied per
// iteration.
func (b *CollideBuilder) Strength(s float64) *CollideBuilder {
	b.strength = s
	return b
}

// Iterations sets how many relaxation passes run per tick.
func (b *CollideBuilder) Iterations(n int) *CollideBuilder {
	b.iterations = n
	return b
}

// Radius sets the per-particle radius function.
func (b *CollideBuilder) Radius(fn NodeFn) *CollideBuilder {
	b.radiusFn = fn
	return b
}

// RadiusConstant sets a uniform radius.
func (b *CollideBuilder) RadiusConstant(r float64) *CollideBuilder {
	return b.Radius(Constant(r))
}

// Build returns the configured Force.
func (b *CollideBuilder) Build() *collideForce {
	return &collideForce{strength: b.strength, iterations: b.iterations, radiusFn: b.radiusFn}
}

type collideForce struct {
	strength   float64
	iterations int
	radiusFn   NodeFn
}

func (f *collideForce) Apply(alpha float64, rnd *rng.LCG, particles []*Particle) {
	n := len(particles)
	if n == 0 {
		return
	}

	tree := quadtree.FromPoints[float64, int](n, func(i int) (float64, float64, int) {
		return particles[i].X, particles[i].Y, i
	})

	tree.VisitAfter(func(q quadtree.Quad[float64, int]) {
		if q.IsLeaf() {
			_, _, data, _ := q.Leaf()
			*q.Value() = f.radiusFn(particles[data].Index)
			return
		}
		var maxR float64
		for _, c := range q.Children() {
			if c != nil && *c > maxR {
				maxR = *c
			}
		}
		*q.Value() = maxR
	})

	for iter := 0; iter < f.iterations; iter++ {
		for i, p := range particles {
			ri := f.radiusFn(p.Index)
			xi, yi := p.X, p.Y

			tree.Visit(func(q quadtree.Quad[float64, int]) quadtree.Visit {
				rj := *q.Value()
				r := ri + rj

				if q.IsLeaf() {
					_, _, data, _ := q.Leaf()
					if data > i {
						pj := particles[data]
						dx := xi - (pj.X + pj.VX)
						dy := yi - (pj.Y + pj.VY)
						if dx == 0 {
							dx = rng.Jiggle(rnd)
						}
						if dy == 0 {
							dy = rng.Jiggle(rnd)
						}
						l := dx*dx + dy*dy
						if l < r*r {
							sq := math.Sqrt(l)
							lam := (r - sq) / sq * f.strength
							dx *= lam
							dy *= lam
							frac := (rj * rj) / (ri*ri + rj*rj)
							p.VX += dx * frac
							p.VY += dy * frac
							pj.VX -= dx * (1 - frac)
							pj.VY -= dy * (1 - frac)
						}
					}
					return quadtree.Continue
				}

				ext := q.Extent()
				if ext.X0 > xi+r || ext.X1 < xi-r || ext.Y0 > yi+r || ext.Y1 < yi-r {
					return quadtree.Skip
				}
				return quadtree.Continue
			})
		}
	}
}
