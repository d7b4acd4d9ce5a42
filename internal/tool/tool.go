// Package tool turns pointer and keyboard input into shape edits. Each tool is
// a small state machine; live feedback mutates shapes in place from a capture
// taken when the gesture started, and only the finished gesture is recorded as
// a command.
package tool

import (
	"log/slog"

	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/history"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// Name identifies a tool.
type Name string

const (
	SelectTool  Name = "select"
	PenTool     Name = "pen"
	NodeTool    Name = "node"
	RectTool    Name = "rect"
	CircleTool  Name = "circle"
	PolygonTool Name = "polygon"
	StarTool    Name = "star"
	TextTool    Name = "text"
)

// Names lists every tool in toolbar order.
var Names = []Name{SelectTool, PenTool, NodeTool, RectTool, CircleTool, PolygonTool, StarTool, TextTool}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Ctrl  bool `json:"ctrl,omitempty"`
	Meta  bool `json:"meta,omitempty"`
	Alt   bool `json:"alt,omitempty"`
}

// Cmd reports whether the platform command key (Ctrl or Meta) is held.
func (m Modifiers) Cmd() bool { return m.Ctrl || m.Meta }

// PointerEvent is a pointer sample in canvas coordinates.
type PointerEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button Button  `json:"button"`
	// Clicks is the click count: 2 for the second press of a double click.
	Clicks int `json:"clicks"`
	Modifiers
}

func (ev PointerEvent) Point() geom.Point { return geom.Pt(ev.X, ev.Y) }

// KeyEvent carries a key name as reported by browsers ("a", "Enter",
// "Escape", "ArrowLeft", ...).
type KeyEvent struct {
	Key string `json:"key"`
	Modifiers
}

// Tool is one interaction mode.
type Tool interface {
	Name() Name
	OnPointerDown(ev PointerEvent)
	OnPointerMove(ev PointerEvent)
	OnPointerUp(ev PointerEvent)
	// OnKeyDown reports whether the tool consumed the key.
	OnKeyDown(ev KeyEvent) bool
	OnActivate()
	// OnDeactivate commits or discards any gesture in progress.
	OnDeactivate()
	Preview() Preview
}

// Preview is tool state the renderer draws on top of the shapes.
type Preview struct {
	Tool Name `json:"tool"`
	// Marquee is the rubber band of the select tool; Crossing marks a
	// right-to-left drag.
	Marquee  *geom.Rect `json:"marquee,omitempty"`
	Crossing bool       `json:"crossing,omitempty"`
	// TransformHandles is set when the selection shows resize and rotate handles.
	TransformHandles bool `json:"transformHandles,omitempty"`
	// ActivePathID is the pen path under construction.
	ActivePathID string `json:"activePathId,omitempty"`
	// EditPathID and SelectedNode describe node editing; SelectedNode is -1
	// when no node is selected.
	EditPathID   string `json:"editPathId,omitempty"`
	SelectedNode int    `json:"selectedNode"`
	// EditingTextID is the text receiving keystrokes.
	EditingTextID string `json:"editingTextId,omitempty"`
}

// Env is what tools share with the editor.
type Env struct {
	Store   store.Store
	History *history.History
	Config  config.Editor
	// Zoom returns the current view zoom; screen pixel tolerances are divided by it.
	Zoom func() float64
	// Layer returns the layer new shapes go on.
	Layer func() string
	// Refresh asks for a redraw after a preview-only change.
	Refresh func()
	// Report receives recoverable errors.
	Report func(error)
	Logger *slog.Logger
}

func (e *Env) zoom() float64 {
	if e.Zoom == nil {
		return 1
	}
	if z := e.Zoom(); z > 0 {
		return z
	}
	return 1
}

// px converts screen pixels to canvas units.
func (e *Env) px(v float64) float64 {
	return v / e.zoom()
}

func (e *Env) layer() string {
	if e.Layer == nil {
		return ""
	}
	return e.Layer()
}

func (e *Env) refresh() {
	if e.Refresh != nil {
		e.Refresh()
	}
}

func (e *Env) report(err error) {
	if e.Report != nil {
		e.Report(err)
	}
	e.logger().Warn("tool error", "error", err)
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Env) execute(cmd history.Command) {
	e.History.Execute(cmd)
	e.logger().Debug("command executed", "command", cmd.Name())
}

// commitEpsilon is the smallest net change a gesture must make to be recorded.
const commitEpsilon = 1e-9
