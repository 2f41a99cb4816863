package gravity

import "github.com/chewxy/math32"

// starDensity fixes the mass-to-volume ratio used for the visual radius.
const starDensity = 250.0

// MassPoint is a point mass in space. Value type, copied freely.
type MassPoint struct {
	Pos  Vec2
	Mass float32
}

// Star is a mass point with a velocity, the mutable per-body simulation
// state. Stars live in the Simulation's slice and are mutated in place
// each step; they are never created or destroyed during a run.
type Star struct {
	Point MassPoint
	Vel   Vec2
}

func NewStar(pos, vel Vec2, mass float32) Star {
	return Star{
		Point: MassPoint{Pos: pos, Mass: mass},
		Vel:   vel,
	}
}

func (s *Star) Pos() Vec2 {
	return s.Point.Pos
}

func (s *Star) Mass() float32 {
	return s.Point.Mass
}

// Radius derives a presentation radius from the star's mass assuming a
// fixed density. Not part of the physics.
func (s *Star) Radius() float32 {
	return math32.Cbrt(0.75 * s.Point.Mass / starDensity)
}
