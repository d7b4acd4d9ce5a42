package command

import (
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// CreateShape adds a shape to the top of the list. Executing it when the shape
// is already present only updates the selection, so tools can add a shape for
// live preview and record the creation afterwards.
type CreateShape struct {
	st       store.Store
	shape    shape.Shape
	selectIt bool
	prevSel  []string
}

func NewCreateShape(st store.Store, sh shape.Shape, selectIt bool) *CreateShape {
	return &CreateShape{st: st, shape: sh, selectIt: selectIt}
}

func (c *CreateShape) Name() string { return "Create Shape" }

// Shape returns the created shape.
func (c *CreateShape) Shape() shape.Shape { return c.shape }

func (c *CreateShape) Execute() {
	c.prevSel = c.st.Selection()
	store.Append(c.st, c.shape)
	if c.selectIt {
		c.st.SetSelection([]string{c.shape.ShapeID()})
	}
}

func (c *CreateShape) Undo() {
	_, _ = store.Remove(c.st, c.shape.ShapeID())
	sel := slices.DeleteFunc(slices.Clone(c.prevSel), func(id string) bool { return id == c.shape.ShapeID() })
	c.st.SetSelection(sel)
}

// DeleteShapes removes top-level shapes by id. Undo puts them back at their
// former indices and restores the selection held before the delete.
type DeleteShapes struct {
	st      store.Store
	ids     []string
	removed []placed
	prevSel []string
}

func NewDeleteShapes(st store.Store, ids []string) *DeleteShapes {
	return &DeleteShapes{st: st, ids: slices.Clone(ids)}
}

func (c *DeleteShapes) Name() string { return "Delete" }

func (c *DeleteShapes) Execute() {
	c.prevSel = c.st.Selection()
	c.removed = capturePlaced(c.st, c.ids)
	removePlaced(c.st, c.removed)
	c.st.SetSelection(slices.DeleteFunc(c.st.Selection(), func(id string) bool {
		return slices.Contains(c.ids, id)
	}))
}

func (c *DeleteShapes) Undo() {
	restorePlaced(c.st, c.removed)
	c.st.SetSelection(c.prevSel)
}

// ImportShapes adds a batch of shapes on top of the list as one step and
// selects them.
type ImportShapes struct {
	st      store.Store
	shapes  []shape.Shape
	prevSel []string
}

func NewImportShapes(st store.Store, shapes []shape.Shape) *ImportShapes {
	return &ImportShapes{st: st, shapes: slices.Clone(shapes)}
}

func (c *ImportShapes) Name() string { return "Import" }

func (c *ImportShapes) Shapes() []shape.Shape { return c.shapes }

func (c *ImportShapes) Execute() {
	c.prevSel = c.st.Selection()
	for _, sh := range c.shapes {
		store.Append(c.st, sh)
	}
	c.st.SetSelection(ids(c.shapes))
}

func (c *ImportShapes) Undo() {
	for _, sh := range c.shapes {
		_, _ = store.Remove(c.st, sh.ShapeID())
	}
	c.st.SetSelection(c.prevSel)
}
