// Package spawn generates initial star configurations for the simulation:
// uniform random fields and rotating galaxy discs. Generators take an
// explicit rand source so runs are reproducible from a seed.
package spawn

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/san-kum/gravsim/internal/gravity"
)

// MassDistribution samples star masses on [0, MaxMass] with an
// exponential bias controlled by Alpha: larger Alpha skews the
// population toward light stars with a rare heavy tail.
type MassDistribution struct {
	Alpha   float32
	MaxMass float32
}

func NewMassDistribution(alpha, maxMass float32) MassDistribution {
	return MassDistribution{Alpha: alpha, MaxMass: maxMass}
}

// Sample maps t in [0, 1] to a mass.
func (d MassDistribution) Sample(t float32) float32 {
	r := math32.Expm1(d.Alpha*t) / math32.Expm1(d.Alpha)
	if r > 1 {
		r = 1
	}
	return d.MaxMass * r
}

// EvalInv inverts Sample: EvalInv(Sample(t)) == t.
func (d MassDistribution) EvalInv(x float32) float32 {
	return math32.Log(math32.Expm1(d.Alpha)*x/d.MaxMass+1) / d.Alpha
}

// Field returns n stationary stars uniformly distributed over a square
// of the given extent centered on the origin.
func Field(rng *rand.Rand, n int, extent float32, dist MassDistribution) []gravity.Star {
	stars := make([]gravity.Star, n)
	for i := range stars {
		pos := gravity.Vec2{
			X: (rng.Float32() - 0.5) * extent,
			Y: (rng.Float32() - 0.5) * extent,
		}
		stars[i] = gravity.NewStar(pos, gravity.Vec2{}, dist.Sample(rng.Float32()))
	}
	return stars
}

// Galaxy returns n stars on a disc of the given radius in near-circular
// orbit around a heavy central star, which is appended last. g must be
// the simulation's gravitational constant so the orbital speeds match.
func Galaxy(rng *rand.Rand, n int, radius, centerMass, g float32, dist MassDistribution) []gravity.Star {
	stars := make([]gravity.Star, 0, n+1)

	for i := 0; i < n; i++ {
		a := rng.Float32() * 2 * math.Pi
		// sqrt for uniform density over the disc area
		d := radius * math32.Sqrt(rng.Float32())
		if d < 1e-3 {
			d = 1e-3
		}
		mass := 1 + dist.Sample(rng.Float32())

		pos := gravity.Vec2{X: math32.Sin(a), Y: math32.Cos(a)}.Scale(d)
		// tangent direction, counterclockwise about the center
		tangent := gravity.Vec2{X: -pos.Y, Y: pos.X}.Scale(1 / d)
		speed := (0.5 + rng.Float32()) * math32.Sqrt(g*(mass+centerMass)/d)

		stars = append(stars, gravity.NewStar(pos, tangent.Scale(speed), mass))
	}

	return append(stars, gravity.NewStar(gravity.Vec2{}, gravity.Vec2{}, centerMass))
}
