package domain

import (
	"fmt"
	"math"
)

// Axis identifies one of the three sides of a particle.
type Axis int

const (
	Axis1 Axis = iota + 1
	Axis2
	Axis3
)

// Axes lists every axis in order.
var Axes = [3]Axis{Axis1, Axis2, Axis3}

// Valid reports whether a is one of Axis1, Axis2 or Axis3.
func (a Axis) Valid() bool {
	return a >= Axis1 && a <= Axis3
}

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case Axis1:
		return "side1"
	case Axis2:
		return "side2"
	case Axis3:
		return "side3"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// AxisChooser draws the side a particle is bisected along.
// Implementations return Axis1, Axis2 or Axis3 with equal probability and
// are not required to be safe for concurrent use.
type AxisChooser interface {
	ChooseAxis() Axis
}

// Particle is a rectangular prism of uniform density.
// A Particle is immutable; the zero value is not a valid particle.
type Particle struct {
	sides   [3]float64
	density float64
}

// NewParticle creates a particle with the given side lengths and density.
// Returns ErrInvalidGeometry if any value is not strictly positive and finite.
func NewParticle(side1, side2, side3, density float64) (Particle, error) {
	for i, s := range [3]float64{side1, side2, side3} {
		if !positive(s) {
			return Particle{}, fmt.Errorf("%w: %s = %g", ErrInvalidGeometry, Axes[i], s)
		}
	}
	if !positive(density) {
		return Particle{}, fmt.Errorf("%w: density = %g", ErrInvalidGeometry, density)
	}
	return Particle{sides: [3]float64{side1, side2, side3}, density: density}, nil
}

// Validate reports ErrInvalidGeometry for a particle that was not built by
// NewParticle, such as the zero value.
func (p Particle) Validate() error {
	_, err := NewParticle(p.sides[0], p.sides[1], p.sides[2], p.density)
	return err
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Side returns the length of the side along axis a.
// It panics if a is not a valid axis.
func (p Particle) Side(a Axis) float64 {
	return p.sides[a-1]
}

// Sides returns the three side lengths.
func (p Particle) Sides() (side1, side2, side3 float64) {
	return p.sides[0], p.sides[1], p.sides[2]
}

// Density returns the particle density.
func (p Particle) Density() float64 {
	return p.density
}

// SurfaceArea returns 2(d1·d2 + d1·d3 + d2·d3).
func (p Particle) SurfaceArea() float64 {
	d1, d2, d3 := p.Sides()
	return 2 * (d1*d2 + d1*d3 + d2*d3)
}

// Volume returns d1·d2·d3.
func (p Particle) Volume() float64 {
	d1, d2, d3 := p.Sides()
	return d1 * d2 * d3
}

// Mass returns Volume() × Density().
func (p Particle) Mass() float64 {
	return p.Volume() * p.density
}

// Divide bisects the particle along an axis drawn from chooser.
// Exactly one draw is consumed. Both children are constructed independently
// from the halved geometry; the receiver is left untouched.
func (p Particle) Divide(chooser AxisChooser) (Particle, Particle, error) {
	return p.DivideAlong(chooser.ChooseAxis())
}

// DivideAlong bisects the particle along axis a.
func (p Particle) DivideAlong(a Axis) (Particle, Particle, error) {
	if !a.Valid() {
		return Particle{}, Particle{}, fmt.Errorf("%w: %d", ErrInvalidAxis, int(a))
	}

	sides := p.sides
	sides[a-1] /= 2

	first, err := NewParticle(sides[0], sides[1], sides[2], p.density)
	if err != nil {
		return Particle{}, Particle{}, fmt.Errorf("divide along %s: %w", a, err)
	}
	second, err := NewParticle(sides[0], sides[1], sides[2], p.density)
	if err != nil {
		return Particle{}, Particle{}, fmt.Errorf("divide along %s: %w", a, err)
	}
	return first, second, nil
}

// String returns a compact representation of the particle geometry.
func (p Particle) String() string {
	return fmt.Sprintf("Particle(%g×%g×%g, ρ=%g)", p.sides[0], p.sides[1], p.sides[2], p.density)
}
