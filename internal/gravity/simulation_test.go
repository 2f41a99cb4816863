package gravity

import (
	"math"
	"testing"
)

func TestEmptySimulationStep(t *testing.T) {
	sim := NewSimulation(nil, DefaultParams())

	for i := 0; i < 1000; i++ {
		sim.Step()
	}

	if len(sim.Stars()) != 0 {
		t.Fatalf("empty simulation grew %d stars", len(sim.Stars()))
	}
}

func TestOutOfBoundsExclusion(t *testing.T) {
	p := DefaultParams()

	inside := NewStar(Vec2{100, 0}, Vec2{}, 50)
	outside := NewStar(Vec2{p.Scale * 2, 0}, Vec2{}, 1e9)

	sim := NewSimulation([]Star{inside, outside}, p)
	sim.Step()

	// the huge out-of-bounds star must not attract the in-bounds one
	if got := sim.Stars()[0].Vel; got != (Vec2{}) {
		t.Fatalf("in-bounds star gained velocity %v from an excluded star", got)
	}
}

func TestOutOfBoundsCoasting(t *testing.T) {
	p := DefaultParams()

	vel := Vec2{3, -2}
	outside := NewStar(Vec2{p.Scale * 2, 0}, vel, 10)

	sim := NewSimulation([]Star{outside}, p)
	sim.Step()

	star := sim.Stars()[0]
	if star.Vel != vel {
		t.Fatalf("out-of-bounds star's velocity changed: %v", star.Vel)
	}
	want := Vec2{p.Scale*2 + vel.X*p.TimeStep, vel.Y * p.TimeStep}
	if star.Pos() != want {
		t.Fatalf("out-of-bounds star at %v, want %v (coasting)", star.Pos(), want)
	}
}

func TestStepPullsBodiesTogether(t *testing.T) {
	p := DefaultParams()

	stars := []Star{
		NewStar(Vec2{-100, 0}, Vec2{}, 1e5),
		NewStar(Vec2{100, 0}, Vec2{}, 1e5),
	}
	sim := NewSimulation(stars, p)

	before := sim.Stars()[1].Pos().Sub(sim.Stars()[0].Pos()).Len()
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	after := sim.Stars()[1].Pos().Sub(sim.Stars()[0].Pos()).Len()

	if after >= before {
		t.Fatalf("separation grew from %.3f to %.3f under mutual attraction", before, after)
	}
}

func TestMomentumConservation(t *testing.T) {
	p := DefaultParams()

	stars := []Star{
		NewStar(Vec2{-120, 40}, Vec2{0.1, 0}, 2e4),
		NewStar(Vec2{90, -60}, Vec2{-0.05, 0.02}, 3e4),
		NewStar(Vec2{10, 150}, Vec2{0, -0.08}, 1e4),
	}
	sim := NewSimulation(stars, p)

	before := sim.Momentum()
	for i := 0; i < 50; i++ {
		sim.Step()
	}
	after := sim.Momentum()

	// forces are approximate and not exactly pairwise-symmetric, but
	// total momentum should stay close for a short, bounded run
	drift := float64(after.Sub(before).Len())
	scale := float64(before.Len()) + 1
	if drift/scale > 0.05 {
		t.Fatalf("momentum drifted %v -> %v", before, after)
	}
}

func TestBuildTreeMatchesInBounds(t *testing.T) {
	p := DefaultParams()

	stars := []Star{
		NewStar(Vec2{0, 0}, Vec2{}, 10),
		NewStar(Vec2{200, -300}, Vec2{}, 20),
		// exactly on the upper edge of the half-open square, excluded
		NewStar(Vec2{p.Origin.X + p.Scale, 0}, Vec2{}, 30),
	}
	sim := NewSimulation(stars, p)

	root := sim.BuildTree()
	if got, want := float64(root.Aggregate().Mass), 30.0; math.Abs(got-want) > 1e-6 {
		t.Fatalf("tree mass %v, want %v (boundary star excluded)", got, want)
	}
	if sim.InBounds() != 2 {
		t.Fatalf("InBounds() = %d, want 2", sim.InBounds())
	}
}
