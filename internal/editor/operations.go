package editor

import (
	"context"
	"fmt"
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/boolean"
	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/history"
	"github.com/eballetbo/LaserReady-sub000/internal/markup"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

// Import adds the paths of SVG markup to the active layer as one undoable
// step and selects them. It returns how many paths were added.
func (e *Editor) Import(src string) (int, error) {
	paths, err := markup.ImportPaths(src, e.activeLayer)
	if err != nil {
		err = fmt.Errorf("import: %w", err)
		e.report(err)
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}
	shapes := make([]shape.Shape, len(paths))
	for i, p := range paths {
		shapes[i] = p
	}
	e.batch(func() {
		e.settle()
		e.execute(command.NewImportShapes(e.store, shapes))
	})
	return len(paths), nil
}

// ExportMarkup writes every shape as SVG, grouped by layer. A zero size uses
// the page size.
func (e *Editor) ExportMarkup(width, height float64) string {
	if width <= 0 || height <= 0 {
		width, height = e.page.Width, e.page.Height
	}
	return markup.Export(e.store.Shapes(), e.layers, width, height)
}

// Select replaces the selection with the top-level shapes among ids.
func (e *Editor) Select(ids []string) {
	e.batch(func() {
		var sel []string
		for _, id := range ids {
			if store.IndexOf(e.store, id) >= 0 && !slices.Contains(sel, id) {
				sel = append(sel, id)
			}
		}
		e.store.SetSelection(sel)
	})
}

// Boolean combines the selected paths. Fewer than two selected paths is a
// no-op; an empty result is reported and leaves the drawing unchanged.
func (e *Editor) Boolean(op boolean.Op) error {
	var err error
	e.batch(func() {
		e.settle()
		var cmd *command.BooleanOp
		cmd, err = command.NewBooleanOp(e.store, e.backend, e.store.Selection(), op)
		if err != nil {
			err = fmt.Errorf("boolean %s: %w", op, err)
			e.report(err)
			return
		}
		if cmd != nil {
			e.execute(cmd)
		}
	})
	return err
}

// Group puts the selected shapes in a new group. It needs two or more.
func (e *Editor) Group() bool {
	sel := e.store.Selection()
	if len(sel) < 2 {
		return false
	}
	e.batch(func() {
		e.settle()
		e.execute(command.NewGroup(e.store, sel))
	})
	return true
}

// Ungroup dissolves the selected groups.
func (e *Editor) Ungroup() bool {
	var groups []string
	for _, sh := range store.Selected(e.store) {
		if _, ok := sh.(*shape.Group); ok {
			groups = append(groups, sh.ShapeID())
		}
	}
	if len(groups) == 0 {
		return false
	}
	e.batch(func() {
		e.settle()
		e.execute(command.NewUngroup(e.store, groups))
	})
	return true
}

// DeleteSelection removes the selected shapes.
func (e *Editor) DeleteSelection() bool {
	sel := e.store.Selection()
	if len(sel) == 0 {
		return false
	}
	e.batch(func() {
		e.settle()
		e.execute(command.NewDeleteShapes(e.store, sel))
	})
	return true
}

// UpdateStyle applies a style patch to every selected path, recursing into
// groups. Nil fields of patch are left alone. It reports false when the
// selection holds no path.
func (e *Editor) UpdateStyle(patch shape.Style) bool {
	cmd := command.NewUpdateStyle(e.store, e.store.Selection(), patch)
	if cmd.Empty() {
		return false
	}
	e.batch(func() {
		e.execute(cmd)
	})
	return true
}

// SetLayer moves the selected shapes to a layer.
func (e *Editor) SetLayer(layerID string) error {
	if _, ok := shape.FindLayer(e.layers, layerID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, layerID)
	}
	cmd := command.NewSetLayer(e.store, e.store.Selection(), layerID)
	if cmd.Empty() {
		return nil
	}
	e.batch(func() {
		e.execute(cmd)
	})
	return nil
}

// SetParams regenerates the single selected polygon or star.
func (e *Editor) SetParams(params shape.Params) bool {
	sel := store.Selected(e.store)
	if len(sel) != 1 {
		return false
	}
	p, ok := sel[0].(*shape.Path)
	if !ok {
		return false
	}
	cmd := command.NewUpdateParams(e.store, p, params)
	if cmd == nil {
		return false
	}
	e.batch(func() { e.execute(cmd) })
	return true
}

// SetNodeKind changes the kind of the node selected in the Node tool.
func (e *Editor) SetNodeKind(kind shape.NodeKind) bool {
	nt, ok := e.active.(*tool.NodeEdit)
	if !ok {
		return false
	}
	var done bool
	e.batch(func() { done = nt.SetNodeKind(kind) })
	return done
}

// SetText replaces the content of the text being edited in the Text tool.
func (e *Editor) SetText(s string) bool {
	tt, ok := e.active.(*tool.Text)
	if !ok {
		return false
	}
	var done bool
	e.batch(func() { done = tt.SetText(s) })
	return done
}

// ConvertTextToPath replaces a top-level text with its glyph outlines. With
// an empty id the first selected text is used. The outlines load in the
// background; the swap and its history entry happen when the completion is
// run from Pending. The returned future resolves then.
func (e *Editor) ConvertTextToPath(ctx context.Context, id string) *history.Future {
	if id == "" {
		for _, sh := range store.Selected(e.store) {
			if _, ok := sh.(*shape.Text); ok {
				id = sh.ShapeID()
				break
			}
		}
	}
	if id == "" {
		return history.Resolved(nil)
	}

	e.batch(e.settle)
	cmd, err := command.NewConvertTextToPath(e.store, e.loader, id)
	if err != nil {
		e.report(err)
		return history.Resolved(err)
	}
	f := e.history.ExecuteAsync(ctx, cmd, e.post)
	f.OnResolve(func(err error) {
		if err != nil {
			e.report(err)
			return
		}
		e.logger.Debug("command executed", "command", cmd.Name())
	})
	return f
}

func (e *Editor) post(fn func()) {
	e.pending <- fn
}

// Pending delivers completions of background work. Each received function
// must be run on the editor's goroutine, directly or through RunPending.
func (e *Editor) Pending() <-chan func() {
	return e.pending
}

// RunPending runs the completions that are ready without waiting and returns
// how many ran.
func (e *Editor) RunPending() int {
	n := 0
	e.batch(func() {
		for {
			select {
			case fn := <-e.pending:
				fn()
				n++
			default:
				return
			}
		}
	})
	return n
}

// Run executes one completion received from Pending.
func (e *Editor) Run(fn func()) {
	e.batch(fn)
}
