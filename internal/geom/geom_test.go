package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func TestSubdivideReproducesMidpoint(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(10, 40), Pt(70, -20), Pt(100, 30)}
	left, right := SubdivideCubicBezier(c.P0, c.P1, c.P2, c.P3, 0.5)

	want := c.Eval(0.5)
	assertPoint(t, want, left.P3)
	assertPoint(t, want, right.P0)

	// each half evaluated at its own midpoint lands on the original curve
	assertPoint(t, c.Eval(0.25), left.Eval(0.5))
	assertPoint(t, c.Eval(0.75), right.Eval(0.5))
}

func TestSubdivideKeepsEndpoints(t *testing.T) {
	c := CubicBez{Pt(1, 2), Pt(3, 9), Pt(8, 9), Pt(10, 2)}
	for _, s := range []float64{0.1, 0.3, 0.9} {
		left, right := c.Subdivide(s)
		assertPoint(t, c.P0, left.P0)
		assertPoint(t, c.P3, right.P3)
		assertPoint(t, c.Eval(s), left.P3)
	}
}

func TestCubicBoundsIncludesExtrema(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)}
	b := c.Bounds()
	assert.InDelta(t, 0, b.MinX, tol)
	assert.InDelta(t, 100, b.MaxX, tol)
	assert.InDelta(t, 0, b.MinY, tol)
	assert.InDelta(t, 75, b.MaxY, tol)
}

func TestBoundingBox(t *testing.T) {
	_, ok := BoundingBox(nil)
	assert.False(t, ok)

	r, ok := BoundingBox([]Point{{3, 4}, {-1, 10}, {7, -2}})
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -1, MinY: -2, MaxX: 7, MaxY: 10}, r)
	assert.Equal(t, 8.0, r.Width())
	assert.Equal(t, 12.0, r.Height())
	assert.Equal(t, Pt(3, 4), r.Center())
}

func TestRotatePoint(t *testing.T) {
	got := RotatePoint(Pt(10, 0), Pt(0, 0), math.Pi/2)
	assertPoint(t, Pt(0, 10), got)

	got = RotatePoint(Pt(5, 5), Pt(5, 5), 1.3)
	assertPoint(t, Pt(5, 5), got)
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"outside right", Pt(15, 5), false},
		{"outside above", Pt(5, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInPolygon(square, tt.p, NonZero))
			assert.Equal(t, tt.want, PointInPolygon(square, tt.p, EvenOdd))
		})
	}
}

func TestFillRulesDifferOnOverlap(t *testing.T) {
	// two clockwise squares traced as a single polygon through a shared corner
	poly := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}, {2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}}
	p := Pt(5, 5)
	assert.True(t, PointInPolygon(poly, p, NonZero))
	assert.False(t, PointInPolygon(poly, p, EvenOdd))
}

func TestNearPolyline(t *testing.T) {
	line := []Point{{0, 0}, {100, 0}}
	assert.True(t, NearPolyline(line, Pt(50, 3), 5, false))
	assert.False(t, NearPolyline(line, Pt(50, 6), 5, false))
	assert.False(t, NearPolyline(line, Pt(110, 0), 5, false))

	tri := []Point{{0, 0}, {100, 0}, {0, 100}}
	assert.False(t, NearPolyline(tri, Pt(-3, 50), 2, false))
	assert.True(t, NearPolyline(tri, Pt(-1, 50), 2, true))
}

func TestRectRelations(t *testing.T) {
	outer := Rect{0, 0, 100, 100}
	inner := Rect{10, 10, 20, 20}
	straddle := Rect{90, 90, 120, 120}
	apart := Rect{200, 200, 210, 210}

	assert.True(t, RectContainsRect(outer, inner))
	assert.False(t, RectContainsRect(outer, straddle))
	assert.True(t, RectIntersectsRect(outer, straddle))
	assert.False(t, RectIntersectsRect(outer, apart))
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(10, -4).Multiply(Rotate(0.7)).Multiply(Scale(2, 3))
	p := Pt(3, 5)
	assertPoint(t, p, m.Invert().Apply(m.Apply(p)))
	assert.True(t, m.Multiply(m.Invert()).IsIdentity())
}

func TestClosestT(t *testing.T) {
	c := Line(Pt(0, 0), Pt(100, 0))
	tt, d2 := c.ClosestT(Pt(50, 4), FlattenSteps)
	assert.InDelta(t, 0.5, tt, 1e-9)
	assert.InDelta(t, 16, d2, 1e-6)
}
