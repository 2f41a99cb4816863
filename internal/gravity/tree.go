package gravity

import "github.com/chewxy/math32"

// Quadrant indexes one of the four children of a Node. The two bits of
// the value encode the child's position relative to the parent's lower
// corner: bit 0 set means the +X half, bit 1 set means the +Y half.
type Quadrant uint8

const (
	NorthWest Quadrant = 0b00
	NorthEast Quadrant = 0b01
	SouthWest Quadrant = 0b10
	SouthEast Quadrant = 0b11
)

const (
	quadrantX = 0b01
	quadrantY = 0b10
)

// Offset returns the origin offset of a child in this quadrant as a
// fraction of the parent square. Scale by half of the parent's scale.
func (q Quadrant) Offset() Vec2 {
	var off Vec2
	if q&quadrantX != 0 {
		off.X = 1
	}
	if q&quadrantY != 0 {
		off.Y = 1
	}
	return off
}

// quadrantOf returns the quadrant an offset relative to a node's origin
// falls into, for a node square of the given scale. Ties at exactly
// scale/2 resolve to the lower-index quadrant.
func quadrantOf(off Vec2, scale float32) Quadrant {
	var q Quadrant
	if off.X > 0.5*scale {
		q |= quadrantX
	}
	if off.Y > 0.5*scale {
		q |= quadrantY
	}
	return q
}

// coincidentTol is the positional tolerance below which a new point is
// treated as a duplicate of a node's current occupant. Two coincident
// points would otherwise subdivide into the same quadrant forever.
const coincidentTol = 1e-3

// Node is one square region of a quadtree, covering
// [origin, origin+scale) on both axes. It holds the total mass and
// mass-weighted centroid of every point inserted into its subtree. The
// tree is rebuilt from scratch every simulation step.
type Node struct {
	origin Vec2
	scale  float32

	com      MassPoint
	children [4]*Node
	leaf     bool
}

// NewRoot returns an empty root node covering a square of the given
// scale. The node is uninitialized until the first insertion.
func NewRoot(origin Vec2, scale float32) *Node {
	return &Node{origin: origin, scale: scale, leaf: true}
}

func newChild(parent *Node, q Quadrant, mp MassPoint) *Node {
	half := parent.scale * 0.5
	return &Node{
		origin: parent.origin.Add(q.Offset().Scale(half)),
		scale:  half,
		com:    mp,
		leaf:   true,
	}
}

func (n *Node) IsLeaf() bool {
	return n.leaf
}

func (n *Node) Origin() Vec2 {
	return n.origin
}

func (n *Node) Scale() float32 {
	return n.scale
}

// Aggregate returns the subtree's total mass and mass-weighted centroid.
// An uninitialized node reports zero mass.
func (n *Node) Aggregate() MassPoint {
	return n.com
}

// Contains reports whether pos lies within the node's square. Callers
// must not insert points the root does not contain.
func (n *Node) Contains(pos Vec2) bool {
	return pos.X >= n.origin.X && pos.X < n.origin.X+n.scale &&
		pos.Y >= n.origin.Y && pos.Y < n.origin.Y+n.scale
}

// Insert adds a mass point to the subtree, updating aggregates along the
// insertion path. pos must lie within the node's square.
func (n *Node) Insert(mp MassPoint) {
	if mp.Mass == 0 {
		// a massless point would corrupt the centroid division
		return
	}
	if n.com.Mass == 0 {
		// first occupant of a fresh node; defer subdividing until a
		// second point arrives
		n.com = mp
		return
	}
	if math32.Abs(mp.Pos.X-n.com.Pos.X) < coincidentTol &&
		math32.Abs(mp.Pos.Y-n.com.Pos.Y) < coincidentTol {
		return
	}

	if n.leaf {
		// the aggregate of a leaf is the point that was previously
		// inserted; push it one level down before it gets averaged away
		n.insertInto(quadrantOf(n.com.Pos.Sub(n.origin), n.scale), n.com)
	}

	total := n.com.Mass + mp.Mass
	n.com.Pos = n.com.Pos.Scale(n.com.Mass).Add(mp.Pos.Scale(mp.Mass)).Scale(1 / total)
	n.com.Mass = total

	n.insertInto(quadrantOf(mp.Pos.Sub(n.origin), n.scale), mp)
}

func (n *Node) insertInto(q Quadrant, mp MassPoint) {
	n.leaf = false
	if child := n.children[q]; child != nil {
		child.Insert(mp)
		return
	}
	n.children[q] = newChild(n, q, mp)
}

// ForceOn returns the approximate net gravitational force the subtree
// exerts on target. A subtree whose scale-to-distance ratio falls below
// theta is treated as a single point at its aggregate; eps softens the
// squared distance so the force stays bounded near zero separation.
// The traversal is read-only, so concurrent calls against the same built
// tree are safe.
func (n *Node) ForceOn(target MassPoint, theta, eps, g float32) Vec2 {
	// g and the target mass factor out of the sum
	var part Vec2

	queue := make([]*Node, 0, 64)
	queue = append(queue, n)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		diff := node.com.Pos.Sub(target.Pos)
		dist := math32.Sqrt(eps + diff.Len2())

		if node.scale/dist < theta || node.leaf {
			part = part.Add(diff.Scale(node.com.Mass / (dist * dist * dist)))
			continue
		}
		for _, child := range node.children {
			if child != nil {
				queue = append(queue, child)
			}
		}
	}

	return part.Scale(g * target.Mass)
}
