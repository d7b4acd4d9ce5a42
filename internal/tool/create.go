package tool

import (
	"math"

	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// minCreateSize is the smallest width and height a drawn shape may have.
const minCreateSize = 1e-6

// Create drags out a rect, circle, polygon or star.
type Create struct {
	env   *Env
	name  Name
	kind  shape.Type
	path  *shape.Path
	start geom.Point
}

// NewCreate returns the creation tool for a parametric shape type.
func NewCreate(env *Env, kind shape.Type) *Create {
	name := map[shape.Type]Name{
		shape.TypeRect:    RectTool,
		shape.TypeCircle:  CircleTool,
		shape.TypePolygon: PolygonTool,
		shape.TypeStar:    StarTool,
	}[kind]
	return &Create{env: env, name: name, kind: kind}
}

func (t *Create) Name() Name { return t.name }

func (t *Create) OnActivate() {}

func (t *Create) OnDeactivate() {
	t.discard()
}

func (t *Create) Preview() Preview {
	return Preview{Tool: t.name, SelectedNode: -1}
}

func (t *Create) OnPointerDown(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	t.discard()
	t.start = ev.Point()
	t.path = shape.NewPath(t.env.layer(), t.kind)
	t.path.LayoutInBox(t.start, t.start)
	store.Append(t.env.Store, t.path)
}

// end returns the drag end point, squared up while Shift is held.
func (t *Create) end(ev PointerEvent) geom.Point {
	p := ev.Point()
	if !ev.Shift {
		return p
	}
	d := p.Sub(t.start)
	size := math.Max(math.Abs(d.X), math.Abs(d.Y))
	return t.start.Add(geom.Pt(math.Copysign(size, d.X), math.Copysign(size, d.Y)))
}

func (t *Create) OnPointerMove(ev PointerEvent) {
	if t.path == nil {
		return
	}
	t.path.LayoutInBox(t.start, t.end(ev))
	store.Touch(t.env.Store)
}

func (t *Create) OnPointerUp(ev PointerEvent) {
	if t.path == nil {
		return
	}
	t.path.LayoutInBox(t.start, t.end(ev))
	b := geom.RectFromPoints(t.start, t.end(ev))
	if b.Width() < minCreateSize || b.Height() < minCreateSize {
		t.discard()
		return
	}
	t.env.execute(command.NewCreateShape(t.env.Store, t.path, true))
	t.path = nil
}

func (t *Create) OnKeyDown(ev KeyEvent) bool {
	if ev.Key == "Escape" && t.path != nil {
		t.discard()
		return true
	}
	return false
}

func (t *Create) discard() {
	if t.path == nil {
		return
	}
	_, _ = store.Remove(t.env.Store, t.path.ID)
	t.path = nil
}
