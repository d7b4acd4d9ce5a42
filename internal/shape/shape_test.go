package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
)

const eps = 1e-9

func rectPath(x, y, w, h float64) *Path {
	p := NewPath("layer_test", TypeRect, RectNodes(geom.Pt(x, y), geom.Pt(x+w, y+h))...)
	p.Closed = true
	return p
}

func assertRect(t *testing.T, want, got geom.Rect) {
	t.Helper()
	assert.InDelta(t, want.MinX, got.MinX, 1e-6, "minX")
	assert.InDelta(t, want.MinY, got.MinY, 1e-6, "minY")
	assert.InDelta(t, want.MaxX, got.MaxX, 1e-6, "maxX")
	assert.InDelta(t, want.MaxY, got.MaxY, 1e-6, "maxY")
}

func TestCloneKeepsIDAndIsDeep(t *testing.T) {
	p := rectPath(0, 0, 10, 10)
	red := "#f00"
	p.StrokeColor = &red

	c := p.Clone().(*Path)
	assert.Equal(t, p.ID, c.ID)
	c.Nodes[0].X = 99
	*c.StrokeColor = "#0f0"
	assert.Equal(t, 0.0, p.Nodes[0].X)
	assert.Equal(t, "#f00", *p.StrokeColor)

	n := p.CloneNew().(*Path)
	assert.NotEqual(t, p.ID, n.ID)
	assert.Equal(t, p.Nodes, n.Nodes)
}

func TestGroupCloneNewMintsChildIDs(t *testing.T) {
	a, b := rectPath(0, 0, 1, 1), rectPath(5, 5, 1, 1)
	g := NewGroup(a, b)
	c := g.CloneNew().(*Group)
	assert.NotEqual(t, g.ID, c.ID)
	assert.NotEqual(t, a.ID, c.Children[0].ShapeID())

	same := g.Clone().(*Group)
	assert.Equal(t, g.ID, same.ID)
	assert.Equal(t, a.ID, same.Children[0].ShapeID())
	assert.NotSame(t, a, same.Children[0])
}

func TestPathTransformsMoveHandles(t *testing.T) {
	p := NewPath("l", TypePen, Node{X: 10, Y: 0, In: geom.Pt(5, 0), Out: geom.Pt(15, 0), Kind: Smooth})

	p.Move(1, 2)
	assert.Equal(t, geom.Pt(6, 2), p.Nodes[0].In)
	assert.Equal(t, geom.Pt(16, 2), p.Nodes[0].Out)

	p.Rotate(math.Pi, geom.Pt(11, 2))
	assert.InDelta(t, 16, p.Nodes[0].In.X, eps)
	assert.InDelta(t, 6, p.Nodes[0].Out.X, eps)

	p.Scale(2, 3, geom.Pt(11, 2))
	assert.InDelta(t, 21, p.Nodes[0].In.X, eps)
	assert.InDelta(t, 1, p.Nodes[0].Out.X, eps)
	assert.InDelta(t, 2, p.Nodes[0].Out.Y, eps)
}

func TestGroupMoveShiftsEveryLeaf(t *testing.T) {
	inner := NewGroup(rectPath(0, 0, 10, 10), NewText("l", 50, 50, "sans-serif", 12))
	g := NewGroup(inner, rectPath(100, 100, 20, 5))

	before := map[string]geom.Rect{}
	for _, l := range Leaves([]Shape{g}) {
		before[l.ShapeID()] = l.Bounds()
	}

	g.Move(7.5, -3)
	for _, l := range Leaves([]Shape{g}) {
		assertRect(t, before[l.ShapeID()].Translate(7.5, -3), l.Bounds())
	}
}

func TestGroupRotateAndScaleRecurse(t *testing.T) {
	a := rectPath(0, 0, 10, 10)
	g := NewGroup(NewGroup(a))

	g.Rotate(math.Pi/2, geom.Pt(0, 0))
	assertRect(t, geom.Rect{MinX: -10, MinY: 0, MaxX: 0, MaxY: 10}, a.Bounds())
	assert.InDelta(t, math.Pi/2, g.Rotation, eps)

	g.Scale(2, 2, geom.Pt(0, 0))
	assertRect(t, geom.Rect{MinX: -20, MinY: 0, MaxX: 0, MaxY: 20}, a.Bounds())
}

func TestEmptyGroupBounds(t *testing.T) {
	g := &Group{ID: "group_x", X: 3, Y: 4}
	b := g.Bounds()
	assert.Equal(t, geom.Rect{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}, b)
	assert.Equal(t, 0.0, b.Width())
}

func TestCombinedBounds(t *testing.T) {
	_, ok := CombinedBounds(nil)
	assert.False(t, ok)

	r, ok := CombinedBounds([]Shape{rectPath(0, 0, 10, 10), rectPath(20, -5, 5, 5)})
	require.True(t, ok)
	assertRect(t, geom.Rect{MinX: 0, MinY: -5, MaxX: 25, MaxY: 10}, r)
}

func TestTextScale(t *testing.T) {
	txt := NewText("l", 10, 10, "sans-serif", 20)
	txt.Scale(2, 2.0005, geom.Pt(0, 0))
	assert.InDelta(t, 40, txt.FontSize, eps)
	assert.Equal(t, 1.0, txt.ScaleX)
	assert.InDelta(t, 20, txt.X, eps)

	txt.Scale(2, 1, geom.Pt(0, 0))
	assert.InDelta(t, 40, txt.FontSize, eps)
	assert.Equal(t, 2.0, txt.ScaleX)
	assert.Equal(t, 1.0, txt.ScaleY)
}

func TestTextNegativeUniformScaleMirrors(t *testing.T) {
	txt := NewText("l", 10, 10, "sans-serif", 20)
	txt.Text = "abc"
	b := txt.Bounds()

	txt.Scale(-1, -1, geom.Pt(0, 0))
	assert.InDelta(t, 20, txt.FontSize, eps)
	assert.Equal(t, -1.0, txt.ScaleX)
	assert.Equal(t, -1.0, txt.ScaleY)
	assertRect(t, geom.Rect{MinX: -b.MaxX, MinY: -b.MaxY, MaxX: -b.MinX, MaxY: -b.MinY}, txt.Bounds())
}

func TestTextBoundsRotateAboutAnchor(t *testing.T) {
	txt := NewText("l", 0, 0, "sans-serif", 10)
	txt.Text = "abcd\nef"
	b := txt.Bounds()
	assertRect(t, geom.Rect{MaxX: 24, MaxY: 24}, b)

	txt.Rotate(math.Pi/2, geom.Pt(0, 0))
	assertRect(t, geom.Rect{MinX: -24, MaxY: 24}, txt.Bounds())
}

func TestSetKindSmoothMakesHandlesCollinear(t *testing.T) {
	n := Node{X: 0, Y: 0, In: geom.Pt(3, 4), Out: geom.Pt(10, 1)}
	lin, lout := geom.Distance(n.Anchor(), n.In), geom.Distance(n.Anchor(), n.Out)

	n.SetKind(Smooth)
	assert.True(t, n.HandlesCollinear(1e-9))
	in, out := n.In.Sub(n.Anchor()), n.Out.Sub(n.Anchor())
	assert.InDelta(t, 0, geom.NormalizeAngle(in.Angle()-(out.Angle()+math.Pi)), 1e-9)
	assert.InDelta(t, lin, in.Len(), 1e-9)
	assert.InDelta(t, lout, out.Len(), 1e-9)
	assert.Equal(t, geom.Pt(0, 0), n.Anchor())
}

func TestSetKindSymmetricEqualizesLengths(t *testing.T) {
	n := Node{X: 5, Y: 5, In: geom.Pt(5, 9), Out: geom.Pt(12, 5)}
	n.SetKind(Symmetric)
	assert.True(t, n.HandlesCollinear(1e-9))
	assert.InDelta(t, geom.Distance(n.Anchor(), n.In), geom.Distance(n.Anchor(), n.Out), 1e-9)
	assert.Equal(t, geom.Pt(5, 5), n.Anchor())
}

func TestSetHandleKeepsInvariant(t *testing.T) {
	smooth := Node{X: 0, Y: 0, In: geom.Pt(-5, 0), Out: geom.Pt(10, 0), Kind: Smooth}
	smooth.SetHandle(HandleOut, geom.Pt(0, 20))
	assert.InDelta(t, 0, smooth.In.X, eps)
	assert.InDelta(t, -5, smooth.In.Y, eps)

	sym := Node{X: 0, Y: 0, In: geom.Pt(-5, 0), Out: geom.Pt(10, 0), Kind: Symmetric}
	sym.SetHandle(HandleIn, geom.Pt(0, 7))
	assert.InDelta(t, 0, sym.Out.X, eps)
	assert.InDelta(t, -7, sym.Out.Y, eps)

	corner := Node{X: 0, Y: 0, In: geom.Pt(-5, 0), Out: geom.Pt(10, 0)}
	corner.SetHandle(HandleIn, geom.Pt(0, 7))
	assert.Equal(t, geom.Pt(10, 0), corner.Out)
}

func TestPolygonAndStarVertices(t *testing.T) {
	nodes := PolygonNodes(geom.Pt(0, 0), 10, 10, 4)
	require.Len(t, nodes, 4)
	assert.InDelta(t, 0, nodes[0].X, eps)
	assert.InDelta(t, -10, nodes[0].Y, eps)
	assert.InDelta(t, 10, nodes[1].X, eps)

	star := StarNodes(geom.Pt(0, 0), 10, 10, 5, 0.4)
	require.Len(t, star, 10)
	assert.InDelta(t, 10, geom.Distance(geom.Pt(0, 0), star[0].Anchor()), eps)
	assert.InDelta(t, 4, geom.Distance(geom.Pt(0, 0), star[1].Anchor()), eps)
}

func TestSetParamsRegeneratesAroundCentroid(t *testing.T) {
	p := NewPath("l", TypePolygon)
	p.LayoutInBox(geom.Pt(0, 0), geom.Pt(100, 100))
	require.Len(t, p.Nodes, 6)

	require.True(t, p.SetParams(Params{Sides: 8}))
	assert.Len(t, p.Nodes, 8)
	assert.Equal(t, 8, p.Params.Sides)
	c := p.Centroid()
	assert.InDelta(t, 50, c.X, 1e-6)
	assert.InDelta(t, 50, c.Y, 1e-6)

	assert.False(t, rectPath(0, 0, 1, 1).SetParams(Params{Sides: 5}))
}

func TestHitTest(t *testing.T) {
	closed := rectPath(0, 0, 100, 100)
	assert.True(t, HitTest(closed, 50, 50, 2))
	assert.True(t, HitTest(closed, 101, 50, 2))
	assert.False(t, HitTest(closed, 110, 50, 2))

	open := NewPath("l", TypePen, NewNode(0, 0), NewNode(100, 0), NewNode(100, 100))
	assert.False(t, HitTest(open, 60, 20, 2))
	assert.True(t, HitTest(open, 50, 1, 2))

	g := NewGroup(rectPath(200, 200, 10, 10))
	assert.True(t, HitTest(g, 205, 205, 1))
	assert.Same(t, g, HitTop([]Shape{closed, g}, 205, 205, 1))
	assert.Nil(t, HitTop([]Shape{closed, g}, 500, 500, 1))
}

func TestRestoreKeepsIdentity(t *testing.T) {
	p := rectPath(0, 0, 10, 10)
	snapshot := p.Clone()
	p.Move(5, 5)
	require.True(t, Restore(p, snapshot))
	assert.Equal(t, 0.0, p.Nodes[0].X)

	a := rectPath(0, 0, 10, 10)
	g := NewGroup(a)
	gs := g.Clone()
	g.Rotate(1, geom.Pt(0, 0))
	require.True(t, Restore(g, gs))
	assert.Same(t, a, g.Children[0])
	assert.InDelta(t, 0, a.Nodes[2].X-10, eps)
	assert.Equal(t, 0.0, g.Rotation)

	assert.False(t, Restore(p, gs))
}
