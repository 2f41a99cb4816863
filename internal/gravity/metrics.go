package gravity

import "github.com/chewxy/math32"

// Diagnostics over the star collection. These are exact O(n^2) sums
// intended for observability, not for the per-step force pass.

// Energy returns kinetic plus softened pairwise potential energy.
func (s *Simulation) Energy() float32 {
	var ke, pe float32

	for i := range s.stars {
		a := &s.stars[i]
		ke += 0.5 * a.Mass() * a.Vel.Len2()

		for j := i + 1; j < len(s.stars); j++ {
			b := &s.stars[j]
			dist := math32.Sqrt(s.params.Epsilon + b.Pos().Sub(a.Pos()).Len2())
			pe -= s.params.G * a.Mass() * b.Mass() / dist
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum.
func (s *Simulation) Momentum() Vec2 {
	var p Vec2
	for i := range s.stars {
		p = p.Add(s.stars[i].Vel.Scale(s.stars[i].Mass()))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *Simulation) AngularMomentum() float32 {
	var l float32
	for i := range s.stars {
		star := &s.stars[i]
		pos, vel := star.Pos(), star.Vel
		l += star.Mass() * (pos.X*vel.Y - pos.Y*vel.X)
	}
	return l
}
