package tool

import (
	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// Pen draws bezier paths node by node. The path under construction lives in
// the shape list unselected; while the pointer hovers, a trailing node follows
// it and is dropped when the path is finished open.
type Pen struct {
	env      *Env
	path     *shape.Path
	trailing bool
	dragging bool
	drag     int
}

func NewPen(env *Env) *Pen {
	return &Pen{env: env}
}

func (t *Pen) Name() Name { return PenTool }

func (t *Pen) OnActivate() {}

func (t *Pen) OnDeactivate() {
	t.finishOpen()
}

func (t *Pen) Preview() Preview {
	p := Preview{Tool: PenTool, SelectedNode: -1}
	if t.path != nil {
		p.ActivePathID = t.path.ID
	}
	return p
}

// confirmed returns the number of placed nodes, excluding the trailing one.
func (t *Pen) confirmed() int {
	n := len(t.path.Nodes)
	if t.trailing {
		n--
	}
	return n
}

func (t *Pen) dropTrailing() {
	if t.trailing {
		t.path.Nodes = t.path.Nodes[:len(t.path.Nodes)-1]
		t.trailing = false
	}
}

func (t *Pen) OnPointerDown(ev PointerEvent) {
	if ev.Button == ButtonRight {
		t.finishOpen()
		return
	}
	if ev.Button != ButtonLeft {
		return
	}
	p := ev.Point()

	if t.path == nil {
		t.path = shape.NewPath(t.env.layer(), shape.TypePen, shape.NewNode(p.X, p.Y))
		store.Append(t.env.Store, t.path)
		t.dragging, t.drag = true, 0
		return
	}

	if t.confirmed() >= 3 && geom.Distance(p, t.path.Nodes[0].Anchor()) <= t.env.px(t.env.Config.SnapRadius) {
		t.dropTrailing()
		t.path.Closed = true
		t.finish()
		return
	}

	if t.trailing {
		t.path.Nodes[len(t.path.Nodes)-1] = shape.NewNode(p.X, p.Y)
		t.trailing = false
	} else {
		t.path.Nodes = append(t.path.Nodes, shape.NewNode(p.X, p.Y))
	}
	t.dragging, t.drag = true, len(t.path.Nodes)-1
	store.Touch(t.env.Store)
}

func (t *Pen) OnPointerMove(ev PointerEvent) {
	if t.path == nil {
		return
	}
	p := ev.Point()
	if t.dragging {
		n := &t.path.Nodes[t.drag]
		a := n.Anchor()
		if geom.Distance(a, p) > 0 {
			n.Out = p
			n.In = a.Sub(p.Sub(a))
			n.Kind = shape.Symmetric
		}
		store.Touch(t.env.Store)
		return
	}
	if t.trailing {
		t.path.Nodes[len(t.path.Nodes)-1] = shape.NewNode(p.X, p.Y)
	} else {
		t.path.Nodes = append(t.path.Nodes, shape.NewNode(p.X, p.Y))
		t.trailing = true
	}
	store.Touch(t.env.Store)
}

func (t *Pen) OnPointerUp(PointerEvent) {
	t.dragging = false
}

func (t *Pen) OnKeyDown(ev KeyEvent) bool {
	if t.path == nil {
		return false
	}
	switch ev.Key {
	case "Escape":
		t.discard()
		return true
	case "Enter":
		t.finishOpen()
		return true
	}
	return false
}

// finishOpen ends the path without closing it. A path with fewer than two
// placed nodes draws nothing and is discarded.
func (t *Pen) finishOpen() {
	if t.path == nil {
		return
	}
	t.dropTrailing()
	if len(t.path.Nodes) < 2 {
		t.discard()
		return
	}
	t.finish()
}

// finish records the path, which is already in the list, as one creation.
func (t *Pen) finish() {
	t.env.execute(command.NewCreateShape(t.env.Store, t.path, true))
	t.reset()
}

// discard removes the unfinished path without touching history.
func (t *Pen) discard() {
	_, _ = store.Remove(t.env.Store, t.path.ID)
	t.reset()
}

func (t *Pen) reset() {
	t.path = nil
	t.trailing = false
	t.dragging = false
}
