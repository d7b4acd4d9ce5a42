package command

import (
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/boolean"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// BooleanOp replaces paths with the result of a boolean operation. The result
// is computed once when the command is built.
type BooleanOp struct {
	st      store.Store
	Op      boolean.Op
	inputs  []placed
	results []*shape.Path
	prevSel []string
}

// NewBooleanOp combines the top-level paths among ids in paint order. It
// returns nil and no error when fewer than two paths are given.
func NewBooleanOp(st store.Store, backend boolean.Backend, ids []string, op boolean.Op) (*BooleanOp, error) {
	var inputs []placed
	var paths []*shape.Path
	for _, p := range capturePlaced(st, ids) {
		if path, ok := p.shape.(*shape.Path); ok {
			inputs = append(inputs, p)
			paths = append(paths, path)
		}
	}
	if len(paths) < 2 {
		return nil, nil
	}
	results, err := boolean.Perform(backend, paths, op)
	if err != nil {
		return nil, err
	}
	return &BooleanOp{st: st, Op: op, inputs: inputs, results: results}, nil
}

func (c *BooleanOp) Name() string { return "Boolean " + c.Op.String() }

// Results returns the paths that replace the inputs.
func (c *BooleanOp) Results() []*shape.Path { return c.results }

func (c *BooleanOp) Execute() {
	c.prevSel = c.st.Selection()
	removePlaced(c.st, c.inputs)

	shapes := c.st.Shapes()
	at := max(0, min(c.inputs[0].index, len(shapes)))
	out := make([]shape.Shape, len(c.results))
	for i, r := range c.results {
		out[i] = r
	}
	c.st.SetShapes(slices.Insert(shapes, at, out...))
	c.st.SetSelection(ids(out))
}

func (c *BooleanOp) Undo() {
	shapes := slices.DeleteFunc(c.st.Shapes(), func(sh shape.Shape) bool {
		return slices.ContainsFunc(c.results, func(r *shape.Path) bool { return r.ID == sh.ShapeID() })
	})
	c.st.SetShapes(shapes)
	restorePlaced(c.st, c.inputs)
	c.st.SetSelection(c.prevSel)
}
