// Package shape holds the editable vector model: paths made of bezier nodes,
// groups of shapes and text, plus the transforms every tool and command uses.
package shape

import "github.com/eballetbo/LaserReady-sub000/internal/geom"

// Shape is the closed sum of *Path, *Group and *Text.
type Shape interface {
	ShapeID() string
	Move(dx, dy float64)
	// Rotate turns the shape by angle radians around center.
	Rotate(angle float64, center geom.Point)
	// Scale stretches the shape by sx, sy away from origin.
	Scale(sx, sy float64, origin geom.Point)
	Bounds() geom.Rect
	// Clone returns a deep copy that keeps the same id.
	Clone() Shape
	// CloneNew returns a deep copy with freshly minted ids throughout.
	CloneNew() Shape

	sealed()
}

var (
	_ Shape = (*Path)(nil)
	_ Shape = (*Group)(nil)
	_ Shape = (*Text)(nil)
)

// CombinedBounds returns the union of the bounds of shapes. ok is false when
// shapes is empty.
func CombinedBounds(shapes []Shape) (r geom.Rect, ok bool) {
	for _, s := range shapes {
		if !ok {
			r, ok = s.Bounds(), true
			continue
		}
		r = r.Union(s.Bounds())
	}
	return r, ok
}

// Restore copies the geometry and properties captured in src back onto dst,
// keeping dst's identity. It reports false when the two are different variants.
func Restore(dst, src Shape) bool {
	switch d := dst.(type) {
	case *Path:
		s, ok := src.(*Path)
		if ok {
			d.RestoreFrom(s)
		}
		return ok
	case *Group:
		s, ok := src.(*Group)
		if ok {
			d.RestoreFrom(s)
		}
		return ok
	case *Text:
		s, ok := src.(*Text)
		if ok {
			d.RestoreFrom(s)
		}
		return ok
	}
	return false
}

// CloneAll clones each shape, keeping ids.
func CloneAll(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// Find returns the shape with the given id, searching inside groups.
func Find(shapes []Shape, id string) Shape {
	var found Shape
	Walk(shapes, func(s Shape) bool {
		if s.ShapeID() == id {
			found = s
			return false
		}
		return true
	})
	return found
}

// Walk visits shapes depth-first in list order until fn returns false.
func Walk(shapes []Shape, fn func(Shape) bool) bool {
	for _, s := range shapes {
		if !fn(s) {
			return false
		}
		if g, ok := s.(*Group); ok {
			if !Walk(g.Children, fn) {
				return false
			}
		}
	}
	return true
}

// Leaves returns every non-group shape below shapes, in paint order.
func Leaves(shapes []Shape) []Shape {
	var out []Shape
	Walk(shapes, func(s Shape) bool {
		if _, ok := s.(*Group); !ok {
			out = append(out, s)
		}
		return true
	})
	return out
}
