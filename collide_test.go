package forcelayout

import (
	"testing"

	"github.com/onnwee/forcelayout/internal/rng"
)

func TestCollideSeparatesOverlappingParticles(t *testing.T) {
	particles := []*Particle{
		NewParticle(0, 0, 0),
		NewParticle(1, 0.5, 0),
	}
	f := NewCollide().RadiusConstant(1).Build()
	f.Apply(1, rng.New(0), particles)

	if particles[0].VX >= 0 {
		t.Fatalf("left particle vx = %v, want < 0", particles[0].VX)
	}
	if particles[1].VX <= 0 {
		t.Fatalf("right particle vx = %v, want > 0", particles[1].VX)
	}
}

func TestCollideIgnoresFarApartParticles(t *testing.T) {
	particles := []*Particle{
		NewParticle(0, 0, 0),
		NewParticle(1, 1000, 1000),
	}
	f := NewCollide().RadiusConstant(1).Build()
	f.Apply(1, rng.New(0), particles)

	if particles[0].VX != 0 || particles[0].VY != 0 {
		t.Fatalf("distant particle should not move: %+v", particles[0])
	}
}
