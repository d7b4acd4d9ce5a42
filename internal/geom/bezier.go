package geom

import "math"

// FlattenSteps is the number of line samples per cubic segment used for hit testing.
// 50 keeps the polyline within a fraction of a pixel for interactive tolerances.
const FlattenSteps = 50

// CubicBez is a cubic Bézier segment with absolute control points.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Line returns a straight segment expressed as a cubic with handles on the anchors.
func Line(a, b Point) CubicBez {
	return CubicBez{a, a, b, b}
}

// Eval returns the point at parameter t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t with De Casteljau's construction. The two halves
// trace exactly the original curve.
func (c CubicBez) Subdivide(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// SubdivideCubicBezier is Subdivide on loose control points.
func SubdivideCubicBezier(p0, p1, p2, p3 Point, t float64) (CubicBez, CubicBez) {
	return CubicBez{p0, p1, p2, p3}.Subdivide(t)
}

// IsLine reports whether both handles sit on their anchors, within eps.
func (c CubicBez) IsLine(eps float64) bool {
	return c.P1.Equals(c.P0, eps) && c.P2.Equals(c.P3, eps)
}

// Flatten samples the curve into steps+1 points including both end points.
func (c CubicBez) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	pts := make([]Point, 0, steps+1)
	pts = append(pts, c.P0)
	for i := 1; i < steps; i++ {
		pts = append(pts, c.Eval(float64(i)/float64(steps)))
	}
	return append(pts, c.P3)
}

// Bounds returns the tight bounding box of the curve using the roots of its derivative.
func (c CubicBez) Bounds() Rect {
	pts := []Point{c.P0, c.P3}
	for _, t := range extrema(c.P0.X, c.P1.X, c.P2.X, c.P3.X) {
		pts = append(pts, c.Eval(t))
	}
	for _, t := range extrema(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y) {
		pts = append(pts, c.Eval(t))
	}
	r, _ := BoundingBox(pts)
	return r
}

// extrema returns the parameters in (0,1) where one coordinate of the curve has a
// zero derivative.
func extrema(p0, p1, p2, p3 float64) []float64 {
	a := 3 * (-p0 + 3*p1 - 3*p2 + p3)
	b := 6 * (p0 - 2*p1 + p2)
	c := 3 * (p1 - p0)

	var ts []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}

	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			add(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return ts
}

// ClosestT returns the sampled parameter nearest to p and its squared distance.
func (c CubicBez) ClosestT(p Point, steps int) (float64, float64) {
	if steps < 1 {
		steps = 1
	}
	bestT, best := 0.0, math.Inf(1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if d := DistanceSquared(c.Eval(t), p); d < best {
			bestT, best = t, d
		}
	}
	return bestT, best
}
