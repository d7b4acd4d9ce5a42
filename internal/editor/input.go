package editor

import (
	"math"
	"strings"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

// ToCanvas maps a screen point to canvas coordinates.
func (e *Editor) ToCanvas(p geom.Point) geom.Point {
	return geom.Pt((p.X-e.pan.X)/e.zoom, (p.Y-e.pan.Y)/e.zoom)
}

// ToScreen maps a canvas point to screen coordinates.
func (e *Editor) ToScreen(p geom.Point) geom.Point {
	return geom.Pt(p.X*e.zoom+e.pan.X, p.Y*e.zoom+e.pan.Y)
}

func (e *Editor) canvasEvent(ev tool.PointerEvent) tool.PointerEvent {
	p := e.ToCanvas(geom.Pt(ev.X, ev.Y))
	ev.X, ev.Y = p.X, p.Y
	return ev
}

// PointerDown, PointerMove and PointerUp take events in screen coordinates.
func (e *Editor) PointerDown(ev tool.PointerEvent) {
	e.batch(func() { e.active.OnPointerDown(e.canvasEvent(ev)) })
}

func (e *Editor) PointerMove(ev tool.PointerEvent) {
	e.batch(func() { e.active.OnPointerMove(e.canvasEvent(ev)) })
}

func (e *Editor) PointerUp(ev tool.PointerEvent) {
	e.batch(func() { e.active.OnPointerUp(e.canvasEvent(ev)) })
}

// KeyDown offers the key to the active tool first, then applies the editor
// shortcuts. It reports whether the key was used.
func (e *Editor) KeyDown(ev tool.KeyEvent) bool {
	var used bool
	e.batch(func() { used = e.keyDown(ev) })
	return used
}

func (e *Editor) keyDown(ev tool.KeyEvent) bool {
	if e.active.OnKeyDown(ev) {
		return true
	}
	key := strings.ToLower(ev.Key)
	switch {
	case key == "escape":
		_ = e.SetTool(tool.SelectTool)
		return true
	case key == "delete" || key == "backspace":
		return e.DeleteSelection()
	case ev.Cmd() && key == "z" && ev.Shift, ev.Cmd() && key == "y":
		e.Redo()
		return true
	case ev.Cmd() && key == "z":
		e.Undo()
		return true
	case ev.Cmd() && key == "g" && ev.Shift:
		return e.Ungroup()
	case ev.Cmd() && key == "g":
		return e.Group()
	}
	return false
}

// Zoom returns the view scale.
func (e *Editor) Zoom() float64 { return e.zoom }

// Pan returns the screen offset of the canvas origin.
func (e *Editor) Pan() geom.Point { return e.pan }

// SetZoom sets the view scale, clamped to [MinZoom, MaxZoom], keeping the
// canvas point under the screen point anchor in place.
func (e *Editor) SetZoom(z float64, anchor geom.Point) {
	if math.IsNaN(z) || z <= 0 {
		return
	}
	z = min(max(z, MinZoom), MaxZoom)
	c := e.ToCanvas(anchor)
	e.batch(func() {
		e.zoom = z
		e.pan = geom.Pt(anchor.X-c.X*z, anchor.Y-c.Y*z)
		e.dirty = true
	})
}

// PanBy shifts the view by a screen-space delta.
func (e *Editor) PanBy(dx, dy float64) {
	e.batch(func() {
		e.pan = geom.Pt(e.pan.X+dx, e.pan.Y+dy)
		e.dirty = true
	})
}
