package forcelayout

import (
	"fmt"
	"math"
	"testing"

	"github.com/onnwee/forcelayout/internal/quadtree"
	"github.com/onnwee/forcelayout/internal/rng"
)

func ringParticles(n int) []*Particle {
	particles := make([]*Particle, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		radius := 100.0 * math.Sqrt(float64(n)/1000.0+1)
		particles[i] = NewParticle(i, radius*math.Cos(angle), radius*math.Sin(angle))
	}
	return particles
}

// bruteForceRepulsion computes the same pairwise kernel as
// manyBodyForce (each particle's velocity changes by the delta toward
// the other particle times strength over the squared distance, alpha
// fixed at 1) without the Barnes-Hut approximation, for comparison.
func bruteForceRepulsion(particles []*Particle, strength float64) {
	n := len(particles)
	for v := 0; v < n; v++ {
		for u := v + 1; u < n; u++ {
			dx := particles[u].X - particles[v].X
			dy := particles[u].Y - particles[v].Y
			l := dx*dx + dy*dy
			if l < 1e-12 {
				continue
			}
			w := strength / l
			fx, fy := dx*w, dy*w
			particles[v].VX += fx
			particles[v].VY += fy
			particles[u].VX -= fx
			particles[u].VY -= fy
		}
	}
}

// BenchmarkBarnesHutVsBruteForce compares the quadtree-approximated
// ManyBody force against direct O(n^2) pairwise repulsion.
func BenchmarkBarnesHutVsBruteForce(b *testing.B) {
	sizes := []int{100, 500, 1000, 2000, 5000}

	for _, n := range sizes {
		f := NewManyBody().StrengthConstant(-10000).Build()
		rnd := rng.New(1)

		b.Run(fmt.Sprintf("BarnesHut_N=%d", n), func(b *testing.B) {
			particles := ringParticles(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f.Apply(1, rnd, particles)
			}
		})

		b.Run(fmt.Sprintf("BruteForce_N=%d", n), func(b *testing.B) {
			particles := ringParticles(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bruteForceRepulsion(particles, -10000)
			}
		})
	}
}

// BenchmarkManyBodyTheta benchmarks the cost of varying the Barnes-Hut
// opening angle: smaller theta visits more of the tree per particle.
func BenchmarkManyBodyTheta(b *testing.B) {
	n := 1000
	particles := ringParticles(n)
	rnd := rng.New(1)
	thetas := []float64{0.0, 0.5, 0.8, 0.9, 1.5}

	for _, theta := range thetas {
		f := NewManyBody().StrengthConstant(-10000).Theta(theta).Build()
		b.Run(fmt.Sprintf("Theta=%.1f", theta), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				f.Apply(1, rnd, particles)
			}
		})
	}
}

// BenchmarkQuadtreeConstruction benchmarks FromPoints in isolation,
// without any force evaluation on top.
func BenchmarkQuadtreeConstruction(b *testing.B) {
	sizes := []int{100, 500, 1000, 5000, 10000}

	for _, n := range sizes {
		particles := ringParticles(n)
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				quadtree.FromPoints[charge, int](n, func(idx int) (float64, float64, int) {
					return particles[idx].X, particles[idx].Y, idx
				})
			}
		})
	}
}
