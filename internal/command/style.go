package command

import (
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// leafPaths returns every path at or below the shapes with the given ids.
func leafPaths(st store.Store, ids []string) []*shape.Path {
	var out []*shape.Path
	for _, id := range ids {
		sh := store.Find(st, id)
		if sh == nil {
			continue
		}
		for _, l := range shape.Leaves([]shape.Shape{sh}) {
			if p, ok := l.(*shape.Path); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// UpdateStyle merges a style patch into every path at or below the targets.
type UpdateStyle struct {
	st    store.Store
	patch shape.Style
	old   map[string]shape.Style
}

func NewUpdateStyle(st store.Store, ids []string, patch shape.Style) *UpdateStyle {
	c := &UpdateStyle{st: st, patch: patch.Clone(), old: make(map[string]shape.Style)}
	for _, p := range leafPaths(st, ids) {
		c.old[p.ID] = p.Style.Clone()
	}
	return c
}

func (c *UpdateStyle) Name() string { return "Update Style" }

// Empty reports whether no path was found to restyle.
func (c *UpdateStyle) Empty() bool { return len(c.old) == 0 }

func (c *UpdateStyle) Execute() {
	for id, old := range c.old {
		if p, ok := store.Find(c.st, id).(*shape.Path); ok {
			p.Style = old.Merge(c.patch)
		}
	}
	store.Touch(c.st)
}

func (c *UpdateStyle) Undo() {
	for id, old := range c.old {
		if p, ok := store.Find(c.st, id).(*shape.Path); ok {
			p.Style = old.Clone()
		}
	}
	store.Touch(c.st)
}

// SetLayer moves every path and text at or below the targets onto a layer.
type SetLayer struct {
	st      store.Store
	layerID string
	old     map[string]string
}

func NewSetLayer(st store.Store, ids []string, layerID string) *SetLayer {
	c := &SetLayer{st: st, layerID: layerID, old: make(map[string]string)}
	for _, id := range ids {
		if sh := store.Find(st, id); sh != nil {
			for _, l := range shape.Leaves([]shape.Shape{sh}) {
				c.old[l.ShapeID()] = shape.LayerOf(l)
			}
		}
	}
	return c
}

func (c *SetLayer) Name() string { return "Set Layer" }

// Empty reports whether every target is already on the layer.
func (c *SetLayer) Empty() bool {
	for _, layer := range c.old {
		if layer != c.layerID {
			return false
		}
	}
	return true
}

func (c *SetLayer) Execute() {
	for id := range c.old {
		setLayer(store.Find(c.st, id), c.layerID)
	}
	store.Touch(c.st)
}

func (c *SetLayer) Undo() {
	for id, layer := range c.old {
		setLayer(store.Find(c.st, id), layer)
	}
	store.Touch(c.st)
}

func setLayer(sh shape.Shape, layerID string) {
	switch v := sh.(type) {
	case *shape.Path:
		v.LayerID = layerID
	case *shape.Text:
		v.LayerID = layerID
	}
}
