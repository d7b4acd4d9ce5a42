package geom

// FillRule selects how overlapping contours decide insideness.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// PointInPolygon tests p against the closed polygon poly using the given fill rule.
func PointInPolygon(poly []Point, p Point, rule FillRule) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	winding, crossings := 0, 0
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if a.Y <= p.Y {
			if b.Y > p.Y && cross(a, b, p) > 0 {
				winding++
				crossings++
			}
		} else if b.Y <= p.Y && cross(a, b, p) < 0 {
			winding--
			crossings++
		}
	}
	if rule == EvenOdd {
		return crossings%2 == 1
	}
	return winding != 0
}

// cross is positive when p lies left of the directed line a->b.
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// DistanceToSegmentSquared returns the squared distance from p to the segment a-b.
func DistanceToSegmentSquared(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return DistanceSquared(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return DistanceSquared(p, a.Add(ab.Mul(t)))
}

// NearPolyline reports whether p lies within tol of any edge of poly. When closed is set
// the edge from the last point back to the first counts too.
func NearPolyline(poly []Point, p Point, tol float64, closed bool) bool {
	if len(poly) == 0 {
		return false
	}
	tol2 := tol * tol
	if len(poly) == 1 {
		return DistanceSquared(poly[0], p) <= tol2
	}
	for i := 0; i+1 < len(poly); i++ {
		if DistanceToSegmentSquared(p, poly[i], poly[i+1]) <= tol2 {
			return true
		}
	}
	if closed {
		return DistanceToSegmentSquared(p, poly[len(poly)-1], poly[0]) <= tol2
	}
	return false
}
