package gravity

// Params are the fixed simulation-wide constants. They are set at
// construction time and never change mid-run.
type Params struct {
	// G is the gravitational constant, rescaled for simulation units.
	G float32
	// Theta is the Barnes-Hut acceptance threshold; larger values trade
	// accuracy for speed.
	Theta float32
	// Epsilon softens the squared distance in force evaluation.
	Epsilon float32
	// Origin and Scale fix the bounding square the quadtree covers.
	// Stars that drift outside it are out of bounds.
	Origin Vec2
	Scale  float32
	// TimeStep scales both the velocity and the position update.
	TimeStep float32
}

// Contains reports whether pos lies within the bounding square.
func (p Params) Contains(pos Vec2) bool {
	return pos.X >= p.Origin.X && pos.X < p.Origin.X+p.Scale &&
		pos.Y >= p.Origin.Y && pos.Y < p.Origin.Y+p.Scale
}

const defaultScale = 1500.0

func DefaultParams() Params {
	return Params{
		G:        1e-4,
		Theta:    1.1,
		Epsilon:  0.05,
		Origin:   Vec2{-defaultScale / 2, -defaultScale / 2},
		Scale:    defaultScale,
		TimeStep: 1.0,
	}
}

// Simulation owns the star collection and advances it step by step. Each
// step builds a fresh quadtree over the in-bounds stars, evaluates
// approximate forces against it, and integrates motion; the tree does
// not survive the step.
type Simulation struct {
	stars  []Star
	params Params
}

func NewSimulation(stars []Star, params Params) *Simulation {
	return &Simulation{stars: stars, params: params}
}

// Stars exposes the body collection. Consumers read positions and masses
// from it; mutating it during Step is not safe.
func (s *Simulation) Stars() []Star {
	return s.stars
}

func (s *Simulation) Params() Params {
	return s.params
}

// BuildTree constructs the quadtree for the current star positions.
// Insertion mutates shared node state, so it runs single-threaded.
func (s *Simulation) BuildTree() *Node {
	root := NewRoot(s.params.Origin, s.params.Scale)
	for i := range s.stars {
		if root.Contains(s.stars[i].Pos()) {
			root.Insert(s.stars[i].Point)
		}
	}
	return root
}

// Step advances every star by one time step.
//
// Stars outside the bounding square are excluded from the tree and
// receive no force this step; they keep coasting on their last velocity.
// A star's own point stays in the tree it queries; its self-contribution
// is a zero difference vector under softening and vanishes in any
// non-trivial aggregate.
func (s *Simulation) Step() {
	p := s.params
	root := s.BuildTree()

	// the tree is immutable from here on; per-star force queries are
	// independent and each writes only its own velocity
	parallelFor(len(s.stars), forceChunk, func(start, end int) {
		for i := start; i < end; i++ {
			star := &s.stars[i]
			if !root.Contains(star.Pos()) {
				continue
			}
			force := root.ForceOn(star.Point, p.Theta, p.Epsilon, p.G)
			star.Vel = star.Vel.Add(force.Scale(p.TimeStep / star.Mass()))
		}
	})

	for i := range s.stars {
		star := &s.stars[i]
		star.Point.Pos = star.Point.Pos.Add(star.Vel.Scale(p.TimeStep))
	}
}

// InBounds counts the stars currently inside the bounding square.
func (s *Simulation) InBounds() int {
	count := 0
	for i := range s.stars {
		if s.params.Contains(s.stars[i].Pos()) {
			count++
		}
	}
	return count
}
