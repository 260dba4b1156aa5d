package forcelayout

import (
	"math"
	"testing"

	"github.com/onnwee/forcelayout/internal/rng"
)

func TestCenterForceShiftsMeanToTarget(t *testing.T) {
	particles := []*Particle{
		NewParticle(0, 10, 0),
		NewParticle(1, -10, 0),
		NewParticle(2, 0, 20),
	}
	f := NewCenter().Position(5, 5).Build()
	f.Apply(1, rng.New(0), particles)

	var sx, sy float64
	for _, p := range particles {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(particles))
	if math.Abs(sx/n-5) > 1e-9 || math.Abs(sy/n-5) > 1e-9 {
		t.Fatalf("mean = (%v,%v), want (5,5)", sx/n, sy/n)
	}
}
