package spawn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/gravsim/internal/gravity"
)

func TestMassDistributionBounds(t *testing.T) {
	dist := NewMassDistribution(35, 200)

	if got := dist.Sample(0); got != 0 {
		t.Errorf("Sample(0) = %v, want 0", got)
	}
	if got := dist.Sample(1); math.Abs(float64(got)-200) > 1e-3 {
		t.Errorf("Sample(1) = %v, want 200", got)
	}

	prev := float32(0)
	for i := 1; i <= 100; i++ {
		m := dist.Sample(float32(i) / 100)
		if m < prev {
			t.Fatalf("Sample not monotonic at t=%v: %v < %v", float32(i)/100, m, prev)
		}
		prev = m
	}
}

func TestMassDistributionInverse(t *testing.T) {
	dist := NewMassDistribution(10, 500)

	for _, tt := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := dist.EvalInv(dist.Sample(tt))
		if math.Abs(float64(got-tt)) > 1e-3 {
			t.Errorf("EvalInv(Sample(%v)) = %v", tt, got)
		}
	}
}

func TestFieldExtent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	stars := Field(rng, 500, 1000, NewMassDistribution(35, 200))

	if len(stars) != 500 {
		t.Fatalf("got %d stars, want 500", len(stars))
	}
	for i := range stars {
		pos := stars[i].Pos()
		if pos.X < -500 || pos.X >= 500 || pos.Y < -500 || pos.Y >= 500 {
			t.Fatalf("star %d at %v outside the field extent", i, pos)
		}
		if stars[i].Vel != (gravity.Vec2{}) {
			t.Fatalf("field star %d has initial velocity %v", i, stars[i].Vel)
		}
	}
}

func TestGalaxyShape(t *testing.T) {
	const (
		g          = 1e-4
		radius     = 500.0
		centerMass = 1e6
	)

	rng := rand.New(rand.NewSource(8))
	stars := Galaxy(rng, 1000, radius, centerMass, g, NewMassDistribution(75, 500))

	if len(stars) != 1001 {
		t.Fatalf("got %d stars, want 1001 (disc + center)", len(stars))
	}

	center := stars[len(stars)-1]
	if center.Pos() != (gravity.Vec2{}) || center.Mass() != centerMass {
		t.Fatalf("central star %+v, want stationary mass %v at origin", center, float32(centerMass))
	}

	for i := 0; i < len(stars)-1; i++ {
		pos := stars[i].Pos()
		d := pos.Len()
		if d > radius+1e-3 {
			t.Fatalf("star %d at distance %v exceeds disc radius", i, d)
		}
		// velocity is tangential: no radial component to speak of
		radial := pos.Dot(stars[i].Vel) / d
		if math.Abs(float64(radial)) > 1e-3*float64(stars[i].Vel.Len()) {
			t.Fatalf("star %d has radial velocity component %v", i, radial)
		}
	}
}

func TestSeededReproducibility(t *testing.T) {
	a := Field(rand.New(rand.NewSource(99)), 50, 800, NewMassDistribution(35, 200))
	b := Field(rand.New(rand.NewSource(99)), 50, 800, NewMassDistribution(35, 200))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs across identically seeded runs", i)
		}
	}
}
