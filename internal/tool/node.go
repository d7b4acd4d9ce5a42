package tool

import (
	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

type nodeDrag int

const (
	dragNone nodeDrag = iota
	dragAnchor
	dragHandleIn
	dragHandleOut
)

// NodeEdit edits the nodes of the single selected path.
type NodeEdit struct {
	env      *Env
	selected int
	drag     nodeDrag
	path     *shape.Path
	snap     *shape.Path
	start    geom.Point
}

func NewNodeEdit(env *Env) *NodeEdit {
	return &NodeEdit{env: env, selected: -1}
}

func (t *NodeEdit) Name() Name { return NodeTool }

func (t *NodeEdit) OnActivate() {
	t.selected = -1
}

func (t *NodeEdit) OnDeactivate() {
	t.cancel()
	t.selected = -1
}

func (t *NodeEdit) Preview() Preview {
	p := Preview{Tool: NodeTool, SelectedNode: -1}
	if path := t.target(); path != nil {
		p.EditPathID = path.ID
		if t.selected < len(path.Nodes) {
			p.SelectedNode = t.selected
		}
	}
	return p
}

// target returns the path being edited: the selection must be exactly one path.
func (t *NodeEdit) target() *shape.Path {
	sel := t.env.Store.Selection()
	if len(sel) != 1 {
		return nil
	}
	p, _ := store.Find(t.env.Store, sel[0]).(*shape.Path)
	return p
}

// SelectedNode returns the selected node index, or -1.
func (t *NodeEdit) SelectedNode() int {
	if p := t.target(); p == nil || t.selected >= len(p.Nodes) {
		return -1
	}
	return t.selected
}

// SetNodeKind changes the kind of the selected node. It reports false when no
// node is selected.
func (t *NodeEdit) SetNodeKind(kind shape.NodeKind) bool {
	p := t.target()
	i := t.SelectedNode()
	if p == nil || i < 0 {
		return false
	}
	t.env.execute(command.NewChangeNodeType(t.env.Store, p, i, kind))
	return true
}

func (t *NodeEdit) OnPointerDown(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	p := ev.Point()
	tol := t.env.px(t.env.Config.HitTolerance)
	path := t.target()

	if path == nil {
		t.pick(p, tol)
		return
	}

	if i := t.SelectedNode(); i >= 0 {
		n := path.Nodes[i]
		switch {
		case !n.Out.Equals(n.Anchor(), 0) && geom.Distance(n.Out, p) <= tol:
			t.begin(path, p, dragHandleOut)
			return
		case !n.In.Equals(n.Anchor(), 0) && geom.Distance(n.In, p) <= tol:
			t.begin(path, p, dragHandleIn)
			return
		}
	}

	for i, n := range path.Nodes {
		if geom.Distance(n.Anchor(), p) > tol {
			continue
		}
		if ev.Clicks >= 2 {
			t.env.execute(command.NewDeleteNode(t.env.Store, path, i))
			t.selected = -1
			return
		}
		t.selected = i
		t.begin(path, p, dragAnchor)
		return
	}

	for i := 0; i < path.SegmentCount(); i++ {
		at, d2 := path.Segment(i).ClosestT(p, geom.FlattenSteps)
		if d2 > tol*tol {
			continue
		}
		if ev.Clicks >= 2 {
			cmd := command.NewInsertNode(t.env.Store, path, i, at)
			t.env.execute(cmd)
			t.selected = cmd.Index()
		}
		return
	}

	t.selected = -1
	t.pick(p, tol)
}

// pick makes the path under p the edited one.
func (t *NodeEdit) pick(p geom.Point, tol float64) {
	hit := shape.HitTop(t.env.Store.Shapes(), p.X, p.Y, tol)
	if _, ok := hit.(*shape.Path); ok {
		t.env.Store.SetSelection([]string{hit.ShapeID()})
		t.selected = -1
		return
	}
	t.env.refresh()
}

func (t *NodeEdit) begin(path *shape.Path, p geom.Point, drag nodeDrag) {
	t.path = path
	t.snap = path.Clone().(*shape.Path)
	t.start = p
	t.drag = drag
	t.env.refresh()
}

func (t *NodeEdit) OnPointerMove(ev PointerEvent) {
	if t.drag == dragNone {
		return
	}
	d := ev.Point().Sub(t.start)
	t.path.RestoreFrom(t.snap)
	n := &t.path.Nodes[t.selected]
	orig := t.snap.Nodes[t.selected]
	switch t.drag {
	case dragAnchor:
		n.MoveTo(orig.Anchor().Add(d))
	case dragHandleIn:
		n.SetHandle(shape.HandleIn, orig.In.Add(d))
	case dragHandleOut:
		n.SetHandle(shape.HandleOut, orig.Out.Add(d))
	}
	store.Touch(t.env.Store)
}

func (t *NodeEdit) OnPointerUp(ev PointerEvent) {
	if t.drag == dragNone {
		return
	}
	t.OnPointerMove(ev)
	to := t.path.Nodes[t.selected]
	t.path.RestoreFrom(t.snap)
	t.drag = dragNone

	from := t.snap.Nodes[t.selected]
	if to.Anchor().Equals(from.Anchor(), commitEpsilon) &&
		to.In.Equals(from.In, commitEpsilon) &&
		to.Out.Equals(from.Out, commitEpsilon) {
		store.Touch(t.env.Store)
		return
	}
	t.env.execute(command.NewMoveNode(t.env.Store, t.path, t.selected, to))
}

func (t *NodeEdit) cancel() bool {
	if t.drag == dragNone {
		return false
	}
	t.path.RestoreFrom(t.snap)
	t.drag = dragNone
	store.Touch(t.env.Store)
	return true
}

func (t *NodeEdit) OnKeyDown(ev KeyEvent) bool {
	switch ev.Key {
	case "Escape":
		if t.cancel() {
			return true
		}
		if t.selected >= 0 {
			t.selected = -1
			t.env.refresh()
			return true
		}
	case "Delete", "Backspace":
		p, i := t.target(), t.SelectedNode()
		if p == nil || i < 0 || t.drag != dragNone {
			return false
		}
		t.env.execute(command.NewDeleteNode(t.env.Store, p, i))
		t.selected = -1
		return true
	}
	return false
}
