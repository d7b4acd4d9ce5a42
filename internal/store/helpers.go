package store

import (
	"fmt"
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// Find returns the shape with the given id anywhere in the tree.
func Find(s Store, id string) shape.Shape {
	return shape.Find(s.Shapes(), id)
}

// IndexOf returns the top-level position of id, or -1.
func IndexOf(s Store, id string) int {
	return slices.IndexFunc(s.Shapes(), func(sh shape.Shape) bool { return sh.ShapeID() == id })
}

// Selected returns the top-level shapes whose ids are selected, in list order.
func Selected(s Store) []shape.Shape {
	sel := s.Selection()
	var out []shape.Shape
	for _, sh := range s.Shapes() {
		if slices.Contains(sel, sh.ShapeID()) {
			out = append(out, sh)
		}
	}
	return out
}

// Insert places sh at index, clamped to the list. A shape whose id is already
// present is left where it is.
func Insert(s Store, sh shape.Shape, index int) {
	shapes := s.Shapes()
	if slices.ContainsFunc(shapes, func(x shape.Shape) bool { return x.ShapeID() == sh.ShapeID() }) {
		return
	}
	index = max(0, min(index, len(shapes)))
	s.SetShapes(slices.Insert(shapes, index, sh))
}

// Append adds sh at the top of the paint order.
func Append(s Store, sh shape.Shape) {
	Insert(s, sh, len(s.Shapes()))
}

// Remove deletes the top-level shape with the given id and returns its former index.
func Remove(s Store, id string) (int, error) {
	shapes := s.Shapes()
	i := slices.IndexFunc(shapes, func(sh shape.Shape) bool { return sh.ShapeID() == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrShapeNotFound, id)
	}
	s.SetShapes(slices.Delete(shapes, i, i+1))
	return i, nil
}

// Replace swaps the top-level shape with id for sh at the same index.
func Replace(s Store, id string, sh shape.Shape) error {
	shapes := s.Shapes()
	i := slices.IndexFunc(shapes, func(x shape.Shape) bool { return x.ShapeID() == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrShapeNotFound, id)
	}
	shapes[i] = sh
	s.SetShapes(shapes)
	return nil
}

// Touch notifies subscribers after an in-place mutation of shapes.
func Touch(s Store) {
	s.SetShapes(s.Shapes())
}
