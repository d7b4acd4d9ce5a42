package tool

import (
	"math"
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

type selectMode int

const (
	selectIdle selectMode = iota
	selectMove
	selectRotate
	selectResize
	selectMarquee
)

// rotateSnap is the angle step used while Shift is held.
const rotateSnap = math.Pi / 12

// Select picks, moves, rotates and resizes shapes.
type Select struct {
	env  *Env
	mode selectMode

	start   geom.Point
	current geom.Point
	mods    Modifiers

	targets []shape.Shape
	snaps   []shape.Shape

	// clicked is the shape a plain click landed on inside a larger
	// selection. The selection narrows to it if the pointer never moves.
	clicked string

	handle     HandleKind
	box        geom.Rect
	pivot      geom.Point
	startAngle float64
}

func NewSelect(env *Env) *Select {
	return &Select{env: env}
}

func (t *Select) Name() Name { return SelectTool }

func (t *Select) OnActivate() {}

func (t *Select) OnDeactivate() {
	t.cancel()
}

func (t *Select) Preview() Preview {
	p := Preview{Tool: SelectTool, SelectedNode: -1, TransformHandles: t.mode != selectMarquee}
	if t.mode == selectMarquee {
		r := geom.RectFromPoints(t.start, t.current)
		p.Marquee = &r
		p.Crossing = t.current.X < t.start.X
	}
	return p
}

func (t *Select) OnPointerDown(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	p := ev.Point()
	t.start, t.current, t.mods = p, p, ev.Modifiers

	selected := store.Selected(t.env.Store)
	if box, ok := shape.CombinedBounds(selected); ok {
		handles := TransformHandles(box, t.env.zoom(), t.env.Config)
		if h := hitHandle(handles, p, t.env.px(t.env.Config.HandleSize)); h != NoHandle {
			t.begin(selected, box)
			t.handle = h
			if h == Rotate {
				t.mode = selectRotate
				t.pivot = box.Center()
				t.startAngle = p.Sub(t.pivot).Angle()
			} else {
				t.mode = selectResize
				t.pivot = opposite(h, box)
			}
			return
		}
	}

	hit := shape.HitTop(t.env.Store.Shapes(), p.X, p.Y, t.env.px(t.env.Config.HitTolerance))
	if hit == nil {
		if !ev.Shift && !ev.Cmd() {
			t.env.Store.SetSelection(nil)
		}
		t.mode = selectMarquee
		return
	}

	sel := t.env.Store.Selection()
	id := hit.ShapeID()
	t.clicked = ""
	switch {
	case ev.Cmd():
		if i := slices.Index(sel, id); i >= 0 {
			t.env.Store.SetSelection(slices.Delete(sel, i, i+1))
			return
		}
		t.env.Store.SetSelection(append(sel, id))
	case ev.Shift:
		if !slices.Contains(sel, id) {
			t.env.Store.SetSelection(append(sel, id))
		}
	default:
		if !slices.Contains(sel, id) {
			t.env.Store.SetSelection([]string{id})
		} else if len(sel) > 1 {
			t.clicked = id
		}
	}

	selected = store.Selected(t.env.Store)
	box, _ := shape.CombinedBounds(selected)
	t.begin(selected, box)
	t.mode = selectMove
}

// begin captures the gesture-start state of targets.
func (t *Select) begin(targets []shape.Shape, box geom.Rect) {
	t.targets = targets
	t.snaps = shape.CloneAll(targets)
	t.box = box
}

// reset puts every target back to its gesture-start state.
func (t *Select) reset() {
	for i, sh := range t.targets {
		shape.Restore(sh, t.snaps[i])
	}
}

func (t *Select) OnPointerMove(ev PointerEvent) {
	p := ev.Point()
	t.current, t.mods = p, ev.Modifiers
	switch t.mode {
	case selectMove:
		d := p.Sub(t.start)
		t.reset()
		for _, sh := range t.targets {
			sh.Move(d.X, d.Y)
		}
	case selectRotate:
		a := t.angle()
		t.reset()
		for _, sh := range t.targets {
			sh.Rotate(a, t.pivot)
		}
	case selectResize:
		sx, sy := t.scale()
		t.reset()
		for _, sh := range t.targets {
			sh.Scale(sx, sy, t.pivot)
		}
	case selectMarquee:
		t.env.refresh()
		return
	default:
		return
	}
	store.Touch(t.env.Store)
}

func (t *Select) angle() float64 {
	a := geom.NormalizeAngle(t.current.Sub(t.pivot).Angle() - t.startAngle)
	if t.mods.Shift {
		a = math.Round(a/rotateSnap) * rotateSnap
	}
	return a
}

// scale returns the factors for the active resize handle. Corner handles keep
// the aspect ratio; edge handles leave the other axis alone.
func (t *Select) scale() (sx, sy float64) {
	handle := geom.Point{}
	for _, h := range TransformHandles(t.box, t.env.zoom(), t.env.Config) {
		if h.Kind == t.handle {
			handle = h.Pos
		}
	}
	factor := func(cur, from, origin float64) float64 {
		if math.Abs(from-origin) < 1e-12 {
			return 1
		}
		return (cur - origin) / (from - origin)
	}
	sx = factor(t.current.X, handle.X, t.pivot.X)
	sy = factor(t.current.Y, handle.Y, t.pivot.Y)

	switch t.handle {
	case N, S:
		sx = 1
	case E, W:
		sy = 1
	default:
		s := math.Max(math.Abs(sx), math.Abs(sy))
		sx = math.Copysign(s, sx)
		sy = math.Copysign(s, sy)
	}
	return sx, sy
}

func (t *Select) OnPointerUp(ev PointerEvent) {
	t.current = ev.Point()
	mode := t.mode
	t.mode = selectIdle
	switch mode {
	case selectMove:
		d := t.current.Sub(t.start)
		t.reset()
		if math.Abs(d.X) > commitEpsilon || math.Abs(d.Y) > commitEpsilon {
			t.env.execute(command.NewMoveShapes(t.env.Store, t.targets, d.X, d.Y))
		} else if t.clicked != "" {
			t.env.Store.SetSelection([]string{t.clicked})
		} else {
			store.Touch(t.env.Store)
		}
	case selectRotate:
		a := t.angle()
		t.reset()
		if math.Abs(a) > commitEpsilon {
			t.env.execute(command.NewRotateShapes(t.env.Store, t.targets, a, t.pivot))
		} else {
			store.Touch(t.env.Store)
		}
	case selectResize:
		sx, sy := t.scale()
		t.reset()
		if math.Abs(sx-1) > commitEpsilon || math.Abs(sy-1) > commitEpsilon {
			t.env.execute(command.NewResizeShapes(t.env.Store, t.targets, sx, sy, t.pivot))
		} else {
			store.Touch(t.env.Store)
		}
	case selectMarquee:
		t.finishMarquee()
	}
	t.targets, t.snaps, t.clicked = nil, nil, ""
}

func (t *Select) finishMarquee() {
	r := geom.RectFromPoints(t.start, t.current)
	crossing := t.current.X < t.start.X

	var sel []string
	if t.mods.Shift || t.mods.Cmd() {
		sel = t.env.Store.Selection()
	}
	if r.Width() > 0 || r.Height() > 0 {
		for _, sh := range t.env.Store.Shapes() {
			b := sh.Bounds()
			hit := geom.RectContainsRect(r, b)
			if crossing {
				hit = geom.RectIntersectsRect(r, b)
			}
			if hit && !slices.Contains(sel, sh.ShapeID()) {
				sel = append(sel, sh.ShapeID())
			}
		}
	}
	t.env.Store.SetSelection(sel)
}

// cancel aborts a gesture, restoring the shapes it touched.
func (t *Select) cancel() bool {
	if t.mode == selectIdle {
		return false
	}
	if t.mode != selectMarquee {
		t.reset()
		store.Touch(t.env.Store)
	} else {
		t.env.refresh()
	}
	t.mode = selectIdle
	t.targets, t.snaps, t.clicked = nil, nil, ""
	return true
}

func (t *Select) OnKeyDown(ev KeyEvent) bool {
	if ev.Key == "Escape" {
		return t.cancel()
	}
	if t.mode != selectIdle {
		return false
	}

	step := t.env.Config.Nudge
	if ev.Shift {
		step = t.env.Config.NudgeLarge
	}
	var dx, dy float64
	switch ev.Key {
	case "ArrowLeft":
		dx = -step
	case "ArrowRight":
		dx = step
	case "ArrowUp":
		dy = -step
	case "ArrowDown":
		dy = step
	default:
		return false
	}
	selected := store.Selected(t.env.Store)
	if len(selected) == 0 {
		return false
	}
	t.env.execute(command.NewMoveShapes(t.env.Store, selected, dx, dy))
	return true
}
