package shape

import (
	"fmt"
	"math"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
)

// NodeKind constrains how a node's two handles relate to each other.
type NodeKind int

const (
	// Corner handles move independently.
	Corner NodeKind = iota
	// Smooth handles point in opposite directions; their lengths are independent.
	Smooth
	// Symmetric handles point in opposite directions and have equal length.
	Symmetric
)

func (k NodeKind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Smooth:
		return "smooth"
	case Symmetric:
		return "symmetric"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// ParseNodeKind is the inverse of NodeKind.String.
func ParseNodeKind(s string) (NodeKind, error) {
	switch s {
	case "corner":
		return Corner, nil
	case "smooth":
		return Smooth, nil
	case "symmetric":
		return Symmetric, nil
	}
	return Corner, fmt.Errorf("unknown node kind %q", s)
}

func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(b []byte) error {
	v, err := ParseNodeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// HandleSide names one of the two control handles of a node.
type HandleSide int

const (
	HandleIn HandleSide = iota
	HandleOut
)

// Node is an anchor with absolute-coordinate control handles.
type Node struct {
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	In   geom.Point `json:"controlIn"`
	Out  geom.Point `json:"controlOut"`
	Kind NodeKind   `json:"kind"`
}

// NewNode returns a corner node with both handles on the anchor.
func NewNode(x, y float64) Node {
	p := geom.Pt(x, y)
	return Node{X: x, Y: y, In: p, Out: p, Kind: Corner}
}

func (n Node) Anchor() geom.Point {
	return geom.Pt(n.X, n.Y)
}

// Handle returns the handle on the given side.
func (n Node) Handle(side HandleSide) geom.Point {
	if side == HandleIn {
		return n.In
	}
	return n.Out
}

// Translate moves the anchor and both handles.
func (n *Node) Translate(dx, dy float64) {
	n.X += dx
	n.Y += dy
	n.In = geom.Pt(n.In.X+dx, n.In.Y+dy)
	n.Out = geom.Pt(n.Out.X+dx, n.Out.Y+dy)
}

// MoveTo places the anchor at p, carrying the handles along.
func (n *Node) MoveTo(p geom.Point) {
	n.Translate(p.X-n.X, p.Y-n.Y)
}

// Map applies f to the anchor and both handles.
func (n *Node) Map(f func(geom.Point) geom.Point) {
	a := f(n.Anchor())
	n.X, n.Y = a.X, a.Y
	n.In = f(n.In)
	n.Out = f(n.Out)
}

// SetKind changes the node kind and repositions the handles so the new kind's
// invariant holds. The anchor never moves.
func (n *Node) SetKind(kind NodeKind) {
	n.Kind = kind
	if kind == Corner {
		return
	}

	a := n.Anchor()
	in := n.In.Sub(a)
	out := n.Out.Sub(a)
	lin, lout := in.Len(), out.Len()
	if lin == 0 && lout == 0 {
		return
	}

	// Shared direction: bisect the out handle and the reversed in handle.
	dir := out.Unit().Sub(in.Unit())
	if dir.Len() < 1e-12 {
		// handles already point the same way; turn the pair perpendicular
		u := out.Unit()
		dir = geom.Pt(-u.Y, u.X)
	}
	dir = dir.Unit()

	if kind == Symmetric {
		l := (lin + lout) / 2
		lin, lout = l, l
	}
	n.Out = a.Add(dir.Mul(lout))
	n.In = a.Sub(dir.Mul(lin))
}

// SetHandle moves one handle to p and updates the opposite handle to keep the
// node kind invariant: smooth keeps the opposite handle's own length, symmetric
// mirrors the moved handle.
func (n *Node) SetHandle(side HandleSide, p geom.Point) {
	if side == HandleIn {
		n.In = p
	} else {
		n.Out = p
	}
	if n.Kind == Corner {
		return
	}

	a := n.Anchor()
	moved := p.Sub(a)
	if moved.Len() == 0 {
		return
	}

	opposite := &n.Out
	if side == HandleOut {
		opposite = &n.In
	}
	length := opposite.Sub(a).Len()
	if n.Kind == Symmetric {
		length = moved.Len()
	}
	*opposite = a.Sub(moved.Unit().Mul(length))
}

// HandlesCollinear reports whether the two handles point in opposite directions
// within eps radians. Zero-length handles count as collinear.
func (n Node) HandlesCollinear(eps float64) bool {
	a := n.Anchor()
	in, out := n.In.Sub(a), n.Out.Sub(a)
	if in.Len() == 0 || out.Len() == 0 {
		return true
	}
	d := geom.NormalizeAngle(in.Angle() - out.Angle() - math.Pi)
	return math.Abs(d) <= eps
}
