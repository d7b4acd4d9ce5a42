package command

import (
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// Group replaces top-level shapes with one group holding them in paint order.
// The same group instance is reused on every redo.
type Group struct {
	st      store.Store
	ids     []string
	group   *shape.Group
	members []placed
	prevSel []string
}

func NewGroup(st store.Store, ids []string) *Group {
	return &Group{st: st, ids: slices.Clone(ids)}
}

func (c *Group) Name() string { return "Group" }

// Group returns the group created by the first Execute.
func (c *Group) Group() *shape.Group { return c.group }

func (c *Group) Execute() {
	c.prevSel = c.st.Selection()
	c.members = capturePlaced(c.st, c.ids)
	if len(c.members) == 0 {
		return
	}
	children := make([]shape.Shape, len(c.members))
	for i, m := range c.members {
		children[i] = m.shape
	}
	if c.group == nil {
		c.group = shape.NewGroup(children...)
	} else {
		c.group.Children = children
	}

	// the group takes the slot of its topmost member
	at := c.members[len(c.members)-1].index - (len(c.members) - 1)
	removePlaced(c.st, c.members)
	store.Insert(c.st, c.group, at)
	c.st.SetSelection([]string{c.group.ID})
}

func (c *Group) Undo() {
	if c.group == nil || len(c.members) == 0 {
		return
	}
	_, _ = store.Remove(c.st, c.group.ID)
	restorePlaced(c.st, c.members)
	c.st.SetSelection(c.prevSel)
}

// Ungroup dissolves top-level groups, splicing their children into the list
// where the group was. Undo puts the same group instances back.
type Ungroup struct {
	st      store.Store
	ids     []string
	groups  []placed
	prevSel []string
}

func NewUngroup(st store.Store, ids []string) *Ungroup {
	return &Ungroup{st: st, ids: slices.Clone(ids)}
}

func (c *Ungroup) Name() string { return "Ungroup" }

func (c *Ungroup) Execute() {
	c.prevSel = c.st.Selection()
	c.groups = c.groups[:0]
	for _, p := range capturePlaced(c.st, c.ids) {
		if _, ok := p.shape.(*shape.Group); ok {
			c.groups = append(c.groups, p)
		}
	}
	if len(c.groups) == 0 {
		return
	}

	shapes := c.st.Shapes()
	var sel []string
	// back to front so earlier indices stay valid
	for i := len(c.groups) - 1; i >= 0; i-- {
		g := c.groups[i].shape.(*shape.Group)
		at := slices.IndexFunc(shapes, func(sh shape.Shape) bool { return sh.ShapeID() == g.ID })
		if at < 0 {
			continue
		}
		shapes = slices.Replace(shapes, at, at+1, g.Children...)
		sel = append(ids(g.Children), sel...)
	}
	c.st.SetShapes(shapes)
	c.st.SetSelection(sel)
}

func (c *Ungroup) Undo() {
	if len(c.groups) == 0 {
		return
	}
	shapes := c.st.Shapes()
	for _, p := range c.groups {
		g := p.shape.(*shape.Group)
		shapes = slices.DeleteFunc(shapes, func(sh shape.Shape) bool {
			return slices.ContainsFunc(g.Children, func(ch shape.Shape) bool { return ch.ShapeID() == sh.ShapeID() })
		})
	}
	c.st.SetShapes(shapes)
	restorePlaced(c.st, c.groups)
	c.st.SetSelection(c.prevSel)
}
