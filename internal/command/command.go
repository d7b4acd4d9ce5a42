// Package command implements the reversible edits of the editor. Every
// command looks shapes up by id in the store on each Execute and Undo and
// silently skips ids that are gone.
package command

import (
	"errors"
	"slices"
	"sort"

	"github.com/eballetbo/LaserReady-sub000/internal/history"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// ErrNotText is returned when a text-only command targets another kind of shape.
var ErrNotText = errors.New("command: shape is not text")

// ErrTextChanged is returned when a text was edited or transformed while its
// outlines were loading.
var ErrTextChanged = errors.New("command: text changed during conversion")

var (
	_ history.Command      = (*CreateShape)(nil)
	_ history.Command      = (*DeleteShapes)(nil)
	_ history.Command      = (*ImportShapes)(nil)
	_ history.Command      = (*MoveShapes)(nil)
	_ history.Command      = (*RotateShapes)(nil)
	_ history.Command      = (*ResizeShapes)(nil)
	_ history.Command      = (*Group)(nil)
	_ history.Command      = (*Ungroup)(nil)
	_ history.Command      = (*MoveNode)(nil)
	_ history.Command      = (*InsertNode)(nil)
	_ history.Command      = (*DeleteNode)(nil)
	_ history.Command      = (*ChangeNodeType)(nil)
	_ history.Command      = (*UpdateStyle)(nil)
	_ history.Command      = (*BooleanOp)(nil)
	_ history.Command      = (*UpdateParams)(nil)
	_ history.Command      = (*SetLayer)(nil)
	_ history.Command      = (*EditText)(nil)
	_ history.AsyncCommand = (*ConvertTextToPath)(nil)
)

// placed is a top-level shape and the index it occupied.
type placed struct {
	shape shape.Shape
	index int
}

// capturePlaced records the top-level shapes with the given ids in index order.
func capturePlaced(st store.Store, ids []string) []placed {
	var out []placed
	for i, sh := range st.Shapes() {
		if slices.Contains(ids, sh.ShapeID()) {
			out = append(out, placed{sh, i})
		}
	}
	return out
}

// removePlaced takes every entry out of the list.
func removePlaced(st store.Store, entries []placed) {
	shapes := st.Shapes()
	shapes = slices.DeleteFunc(shapes, func(sh shape.Shape) bool {
		return slices.ContainsFunc(entries, func(p placed) bool { return p.shape.ShapeID() == sh.ShapeID() })
	})
	st.SetShapes(shapes)
}

// restorePlaced puts entries back at their recorded indices.
func restorePlaced(st store.Store, entries []placed) {
	sorted := slices.Clone(entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	shapes := st.Shapes()
	for _, p := range sorted {
		if slices.ContainsFunc(shapes, func(sh shape.Shape) bool { return sh.ShapeID() == p.shape.ShapeID() }) {
			continue
		}
		i := max(0, min(p.index, len(shapes)))
		shapes = slices.Insert(shapes, i, p.shape)
	}
	st.SetShapes(shapes)
}

// snapshots clones the shapes with the given ids, keeping ids.
func snapshots(st store.Store, ids []string) []shape.Shape {
	var out []shape.Shape
	for _, id := range ids {
		if sh := store.Find(st, id); sh != nil {
			out = append(out, sh.Clone())
		}
	}
	return out
}

// restore writes each snapshot back onto its live shape and returns the live
// shapes that were found.
func restore(st store.Store, snaps []shape.Shape) []shape.Shape {
	var live []shape.Shape
	for _, snap := range snaps {
		sh := store.Find(st, snap.ShapeID())
		if sh == nil || !shape.Restore(sh, snap) {
			continue
		}
		live = append(live, sh)
	}
	return live
}

func ids(shapes []shape.Shape) []string {
	out := make([]string, len(shapes))
	for i, sh := range shapes {
		out[i] = sh.ShapeID()
	}
	return out
}
