package shape

import (
	"math"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
)

// kappa places cubic handles so four segments approximate a circle.
const kappa = 0.5522847498

// RectNodes returns the four corners of the rect spanned by a and b, clockwise
// from the top-left.
func RectNodes(a, b geom.Point) []Node {
	r := geom.RectFromPoints(a, b)
	c := r.Corners()
	return []Node{
		NewNode(c[0].X, c[0].Y),
		NewNode(c[1].X, c[1].Y),
		NewNode(c[2].X, c[2].Y),
		NewNode(c[3].X, c[3].Y),
	}
}

// EllipseNodes returns four symmetric nodes approximating an ellipse, starting at the top.
func EllipseNodes(c geom.Point, rx, ry float64) []Node {
	kx, ky := rx*kappa, ry*kappa
	return []Node{
		{X: c.X, Y: c.Y - ry, In: geom.Pt(c.X-kx, c.Y-ry), Out: geom.Pt(c.X+kx, c.Y-ry), Kind: Symmetric},
		{X: c.X + rx, Y: c.Y, In: geom.Pt(c.X+rx, c.Y-ky), Out: geom.Pt(c.X+rx, c.Y+ky), Kind: Symmetric},
		{X: c.X, Y: c.Y + ry, In: geom.Pt(c.X+kx, c.Y+ry), Out: geom.Pt(c.X-kx, c.Y+ry), Kind: Symmetric},
		{X: c.X - rx, Y: c.Y, In: geom.Pt(c.X-rx, c.Y+ky), Out: geom.Pt(c.X-rx, c.Y-ky), Kind: Symmetric},
	}
}

// PolygonNodes returns a regular polygon with vertex i at angle i·2π/sides − π/2.
func PolygonNodes(c geom.Point, rx, ry float64, sides int) []Node {
	nodes := make([]Node, sides)
	for i := range nodes {
		a := float64(i)*2*math.Pi/float64(sides) - math.Pi/2
		nodes[i] = NewNode(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
	}
	return nodes
}

// StarNodes returns 2·points vertices at angle i·π/points − π/2, alternating between
// the outer radius and inner·outer.
func StarNodes(c geom.Point, rx, ry float64, points int, inner float64) []Node {
	nodes := make([]Node, 2*points)
	for i := range nodes {
		a := float64(i)*math.Pi/float64(points) - math.Pi/2
		f := 1.0
		if i%2 == 1 {
			f = inner
		}
		nodes[i] = NewNode(c.X+rx*f*math.Cos(a), c.Y+ry*f*math.Sin(a))
	}
	return nodes
}

// LayoutInBox recomputes the nodes of a parametric path so it fills the box
// spanned by a and b. Rect and circle use the box directly; polygon and star are
// inscribed in the ellipse of the box.
func (p *Path) LayoutInBox(a, b geom.Point) {
	r := geom.RectFromPoints(a, b)
	c := r.Center()
	rx, ry := r.Width()/2, r.Height()/2
	switch p.Type {
	case TypeRect:
		p.Nodes = RectNodes(a, b)
	case TypeCircle:
		p.Nodes = EllipseNodes(c, rx, ry)
	case TypePolygon:
		sides := 6
		if p.Params != nil && p.Params.Sides >= 3 {
			sides = p.Params.Sides
		}
		p.Nodes = PolygonNodes(c, rx, ry, sides)
	case TypeStar:
		points, inner := 5, 0.5
		if p.Params != nil && p.Params.Points >= 2 {
			points = p.Params.Points
		}
		if p.Params != nil && p.Params.InnerRadius > 0 {
			inner = p.Params.InnerRadius
		}
		p.Nodes = StarNodes(c, rx, ry, points, inner)
	default:
		return
	}
	p.Closed = true
}
