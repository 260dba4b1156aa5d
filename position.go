package forcelayout

import "github.com/onnwee/forcelayout/internal/rng"

type axis uint8

const (
	axisX axis = iota
	axisY
)

// PositionBuilder configures a PositionX or PositionY force — a weak
// spring pulling every particle's velocity on one axis toward a
// per-particle target.
type PositionBuilder struct {
	axis     axis
	strength NodeFn
	target   NodeFn
}

// NewPositionX returns a PositionBuilder for the X axis with the
// default strength (0.1) and target (0).
func NewPositionX() *PositionBuilder {
	return &PositionBuilder{axis: axisX, strength: Constant(0.1), target: Constant(0)}
}

// NewPositionY returns a PositionBuilder for the Y axis with the
// default strength (0.1) and target (0).
func NewPositionY() *PositionBuilder {
	return &PositionBuilder{axis: axisY, strength: Constant(0.1), target: Constant(0)}
}

// Strength sets the per-particle strength function.
func (b *PositionBuilder) Strength(fn NodeFn) *PositionBuilder {
	b.strength = fn
	return b
}

// StrengthConstant sets a uniform strength.
func (b *PositionBuilder) StrengthConstant(v float64) *PositionBuilder {
	return b.Strength(Constant(v))
}

// Target sets the per-particle target function.
func (b *PositionBuilder) Target(fn NodeFn) *PositionBuilder {
	b.target = fn
	return b
}

// TargetConstant sets a uniform target.
func (b *PositionBuilder) TargetConstant(v float64) *PositionBuilder {
	return b.Target(Constant(v))
}

// Build returns the configured Force.
func (b *PositionBuilder) Build() *positionForce {
	return &positionForce{axis: b.axis, strength: b.strength, target: b.target}
}

type positionForce struct {
	axis     axis
	strength NodeFn
	target   NodeFn
}

func (f *positionForce) Apply(alpha float64, rnd *rng.LCG, particles []*Particle) {
	for _, p := range particles {
		s := f.strength(p.Index) * alpha
		t := f.target(p.Index)
		switch f.axis {
		case axisX:
			p.VX += (t - p.X) * s
		case axisY:
			p.VY += (t - p.Y) * s
		}
	}
}
