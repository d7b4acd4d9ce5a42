package shape

import (
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

// Group is an ordered collection of shapes transformed as one. Children keep
// absolute coordinates; X, Y and Rotation track the group's own frame.
type Group struct {
	ID       string  `json:"id"`
	Children []Shape `json:"-"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// NewGroup returns a group with a fresh id whose origin is the top-left of its children.
func NewGroup(children ...Shape) *Group {
	g := &Group{ID: typeid.NewGroupID(), Children: children}
	if r, ok := CombinedBounds(children); ok {
		g.X, g.Y = r.MinX, r.MinY
	}
	return g
}

func (g *Group) ShapeID() string { return g.ID }
func (g *Group) sealed()         {}

func (g *Group) Move(dx, dy float64) {
	g.X += dx
	g.Y += dy
	for _, c := range g.Children {
		c.Move(dx, dy)
	}
}

func (g *Group) Rotate(angle float64, center geom.Point) {
	o := geom.RotatePoint(geom.Pt(g.X, g.Y), center, angle)
	g.X, g.Y = o.X, o.Y
	g.Rotation += angle
	for _, c := range g.Children {
		c.Rotate(angle, center)
	}
}

func (g *Group) Scale(sx, sy float64, origin geom.Point) {
	o := geom.ScalePoint(geom.Pt(g.X, g.Y), origin, sx, sy)
	g.X, g.Y = o.X, o.Y
	for _, c := range g.Children {
		c.Scale(sx, sy, origin)
	}
}

// Bounds is the union of the children's bounds; an empty group is a zero-size
// rect at its origin.
func (g *Group) Bounds() geom.Rect {
	if r, ok := CombinedBounds(g.Children); ok {
		return r
	}
	return geom.Rect{MinX: g.X, MinY: g.Y, MaxX: g.X, MaxY: g.Y}
}

func (g *Group) Clone() Shape {
	c := *g
	c.Children = CloneAll(g.Children)
	return &c
}

func (g *Group) CloneNew() Shape {
	c := *g
	c.ID = typeid.NewGroupID()
	c.Children = make([]Shape, len(g.Children))
	for i, ch := range g.Children {
		c.Children[i] = ch.CloneNew()
	}
	return &c
}

// RestoreFrom copies src's frame and children back. Children that are still
// present with the same id and variant are restored in place; the rest are
// replaced by clones of src's children.
func (g *Group) RestoreFrom(src *Group) {
	g.X, g.Y, g.Rotation = src.X, src.Y, src.Rotation

	live := make(map[string]Shape, len(g.Children))
	for _, c := range g.Children {
		live[c.ShapeID()] = c
	}
	children := make([]Shape, len(src.Children))
	for i, sc := range src.Children {
		if lc, ok := live[sc.ShapeID()]; ok && Restore(lc, sc) {
			children[i] = lc
			continue
		}
		children[i] = sc.Clone()
	}
	g.Children = children
}
