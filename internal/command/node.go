package command

import (
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// nodeEdit is the common base of node commands: it snapshots one path when
// built and detaches parametric paths, since their nodes no longer follow
// the parameters once edited by hand.
type nodeEdit struct {
	st   store.Store
	snap *shape.Path
}

func newNodeEdit(st store.Store, p *shape.Path) nodeEdit {
	return nodeEdit{st: st, snap: p.Clone().(*shape.Path)}
}

// PathID returns the id of the edited path.
func (n *nodeEdit) PathID() string { return n.snap.ID }

// reset restores the live path to the snapshot and returns it.
func (n *nodeEdit) reset() *shape.Path {
	p, ok := store.Find(n.st, n.snap.ID).(*shape.Path)
	if !ok {
		return nil
	}
	p.RestoreFrom(n.snap)
	return p
}

func (n *nodeEdit) Undo() {
	if n.reset() != nil {
		store.Touch(n.st)
	}
}

// MoveNode replaces one node, anchor and handles, with To.
type MoveNode struct {
	nodeEdit
	Index int
	To    shape.Node
}

func NewMoveNode(st store.Store, p *shape.Path, index int, to shape.Node) *MoveNode {
	return &MoveNode{nodeEdit: newNodeEdit(st, p), Index: index, To: to}
}

func (c *MoveNode) Name() string { return "Move Node" }

func (c *MoveNode) Execute() {
	p := c.reset()
	if p == nil || c.Index < 0 || c.Index >= len(p.Nodes) {
		return
	}
	p.Nodes[c.Index] = c.To
	p.Detach()
	store.Touch(c.st)
}

// InsertNode splits segment Segment at parameter T. The neighbouring handles
// are adjusted so the curve is unchanged; a node inserted on a straight
// segment is a corner with handles on its anchor.
type InsertNode struct {
	nodeEdit
	Segment int
	T       float64
}

func NewInsertNode(st store.Store, p *shape.Path, segment int, t float64) *InsertNode {
	return &InsertNode{nodeEdit: newNodeEdit(st, p), Segment: segment, T: t}
}

func (c *InsertNode) Name() string { return "Insert Node" }

// Index returns the position of the inserted node.
func (c *InsertNode) Index() int { return c.Segment + 1 }

func (c *InsertNode) Execute() {
	p := c.reset()
	if p == nil || c.Segment < 0 || c.Segment >= p.SegmentCount() {
		return
	}
	i := c.Segment
	j := (i + 1) % len(p.Nodes)
	seg := p.Segment(i)

	var n shape.Node
	if seg.IsLine(1e-9) {
		mid := seg.Eval(c.T)
		n = shape.NewNode(mid.X, mid.Y)
	} else {
		left, right := geom.SubdivideCubicBezier(seg.P0, seg.P1, seg.P2, seg.P3, c.T)
		p.Nodes[i].Out = left.P1
		p.Nodes[j].In = right.P2
		n = shape.Node{X: left.P3.X, Y: left.P3.Y, In: left.P2, Out: right.P1, Kind: shape.Smooth}
	}
	p.Nodes = slices.Insert(p.Nodes, i+1, n)
	p.Detach()
	store.Touch(c.st)
}

// DeleteNode removes one node. A path left with fewer than two nodes is
// removed from the list; a closed path left with two nodes is opened.
type DeleteNode struct {
	nodeEdit
	Index   int
	removed []placed
	prevSel []string
}

func NewDeleteNode(st store.Store, p *shape.Path, index int) *DeleteNode {
	return &DeleteNode{nodeEdit: newNodeEdit(st, p), Index: index}
}

func (c *DeleteNode) Name() string { return "Delete Node" }

func (c *DeleteNode) Execute() {
	p := c.reset()
	if p == nil || c.Index < 0 || c.Index >= len(p.Nodes) {
		return
	}
	if len(p.Nodes)-1 < 2 {
		c.prevSel = c.st.Selection()
		c.removed = capturePlaced(c.st, []string{p.ID})
		removePlaced(c.st, c.removed)
		c.st.SetSelection(slices.DeleteFunc(c.st.Selection(), func(id string) bool { return id == p.ID }))
		return
	}
	p.Nodes = slices.Delete(p.Nodes, c.Index, c.Index+1)
	if p.Closed && len(p.Nodes) < 3 {
		p.Closed = false
	}
	p.Detach()
	store.Touch(c.st)
}

func (c *DeleteNode) Undo() {
	if len(c.removed) > 0 {
		restorePlaced(c.st, c.removed)
		c.st.SetSelection(c.prevSel)
		c.removed = nil
	}
	c.nodeEdit.Undo()
}

// ChangeNodeType sets the kind of one node, repositioning its handles.
type ChangeNodeType struct {
	nodeEdit
	Index int
	Kind  shape.NodeKind
}

func NewChangeNodeType(st store.Store, p *shape.Path, index int, kind shape.NodeKind) *ChangeNodeType {
	return &ChangeNodeType{nodeEdit: newNodeEdit(st, p), Index: index, Kind: kind}
}

func (c *ChangeNodeType) Name() string { return "Change Node Type" }

func (c *ChangeNodeType) Execute() {
	p := c.reset()
	if p == nil || c.Index < 0 || c.Index >= len(p.Nodes) {
		return
	}
	p.Nodes[c.Index].SetKind(c.Kind)
	p.Detach()
	store.Touch(c.st)
}
