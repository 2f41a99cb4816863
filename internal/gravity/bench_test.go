package gravity

import (
	"math/rand"
	"testing"
)

func benchPoints(n int) []MassPoint {
	rng := rand.New(rand.NewSource(42))
	points := make([]MassPoint, n)
	for i := range points {
		points[i] = MassPoint{
			Pos: Vec2{
				X: rng.Float32()*1000 - 500,
				Y: rng.Float32()*1000 - 500,
			},
			Mass: 1,
		}
	}
	return points
}

func benchmarkBuildTree(b *testing.B, n int) {
	points := benchPoints(n)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		root := NewRoot(Vec2{-500, -500}, 1000)
		for _, p := range points {
			root.Insert(p)
		}
	}
}

func BenchmarkBuildTree1k(b *testing.B) { benchmarkBuildTree(b, 1000) }
func BenchmarkBuildTree5k(b *testing.B) { benchmarkBuildTree(b, 5000) }

func benchmarkStep(b *testing.B, n int) {
	points := benchPoints(n)
	stars := make([]Star, n)
	for i, p := range points {
		stars[i] = NewStar(p.Pos, Vec2{}, p.Mass)
	}
	sim := NewSimulation(stars, DefaultParams())
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sim.Step()
	}
}

func BenchmarkStep1k(b *testing.B) { benchmarkStep(b, 1000) }
func BenchmarkStep5k(b *testing.B) { benchmarkStep(b, 5000) }

func BenchmarkForceOn(b *testing.B) {
	root := NewRoot(Vec2{-500, -500}, 1000)
	for _, p := range benchPoints(5000) {
		root.Insert(p)
	}
	target := MassPoint{Pos: Vec2{120, -75}, Mass: 1}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		root.ForceOn(target, 1.1, 0.05, 1e-4)
	}
}
