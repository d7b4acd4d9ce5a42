package shape

import "github.com/eballetbo/LaserReady-sub000/internal/geom"

// HitTest reports whether (x, y) is inside s or within tol of its outline.
// Only closed paths have an inside.
func HitTest(s Shape, x, y, tol float64) bool {
	p := geom.Pt(x, y)
	switch v := s.(type) {
	case *Path:
		poly := v.Polyline()
		if v.Closed && geom.PointInPolygon(poly, p, geom.NonZero) {
			return true
		}
		return geom.NearPolyline(poly, p, tol, v.Closed)
	case *Group:
		for i := len(v.Children) - 1; i >= 0; i-- {
			if HitTest(v.Children[i], x, y, tol) {
				return true
			}
		}
		return false
	case *Text:
		local := v.Transform().Invert().Apply(p)
		return v.LocalBounds().Inset(-tol).Contains(local)
	}
	return false
}

// HitTop returns the topmost shape of the list hit at (x, y). Groups are searched
// recursively but the top-level shape is returned.
func HitTop(shapes []Shape, x, y, tol float64) Shape {
	for i := len(shapes) - 1; i >= 0; i-- {
		if HitTest(shapes[i], x, y, tol) {
			return shapes[i]
		}
	}
	return nil
}
