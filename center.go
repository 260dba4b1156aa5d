package forcelayout

import "github.com/onnwee/forcelayout/internal/rng"

// CenterBuilder configures a Center force.
type CenterBuilder struct {
	strength float64
	x, y     float64
}

// NewCenter returns a CenterBuilder with strength 1.0 centered on the
// origin.
func NewCenter() *CenterBuilder {
	return &CenterBuilder{strength: 1.0}
}

// Strength sets how strongly the mean position is pulled toward the
// target.
func (b *CenterBuilder) Strength(s float64) *CenterBuilder {
	b.strength = s
	return b
}

// Position sets the target point the mean particle position is pulled
// toward.
func (b *CenterBuilder) Position(x, y float64) *CenterBuilder {
	b.x, b.y = x, y
	return b
}

// Build returns the configured Force.
func (b *CenterBuilder) Build() *centerForce {
	return &centerForce{strength: b.strength, x: b.x, y: b.y}
}

type centerForce struct {
	strength float64
	x, y     float64
}

// Apply shifts every particle's position so the set's mean sits at the
// target, scaled by strength. Unlike the other forces, Center moves
// positions directly rather than accumulating velocity.
func (f *centerForce) Apply(alpha float64, rnd *rng.LCG, particles []*Particle) {
	if len(particles) == 0 {
		return
	}
	var sx, sy float64
	for _, p := range particles {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(particles))
	sx = (sx/n-f.x)*f.strength
	sy = (sy/n-f.y)*f.strength
	for _, p := range particles {
		p.X -= sx
		p.Y -= sy
	}
}
