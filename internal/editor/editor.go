// Package editor is the controller a host UI talks to. It owns the active
// tool, maps host input into canvas space, exposes the undoable operations and
// pushes a scene to the renderer whenever the drawing changes.
//
// An Editor is not safe for concurrent use. All calls, and the functions
// received from Pending, must run on one goroutine.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/boolean"
	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/history"
	"github.com/eballetbo/LaserReady-sub000/internal/render"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

var (
	ErrUnknownTool  = errors.New("editor: unknown tool")
	ErrUnknownLayer = errors.New("editor: unknown layer")
)

const (
	MinZoom = 0.05
	MaxZoom = 64.0

	// pendingBuffer is how many async completions may wait before their
	// goroutines block.
	pendingBuffer = 16

	defaultPageWidth  = 400
	defaultPageHeight = 300
)

type Editor struct {
	store    store.Store
	history  *history.History
	cfg      config.Editor
	renderer render.Renderer
	backend  boolean.Backend
	loader   command.OutlineLoader
	logger   *slog.Logger
	onError  func(error)

	env    *tool.Env
	tools  map[tool.Name]tool.Tool
	active tool.Tool

	// page holds the document metadata; its Shapes are not kept current.
	page        document.Document
	layers      []shape.Layer
	activeLayer string

	zoom float64
	pan  geom.Point

	pending     chan func()
	unsubscribe func()

	// hold defers rendering while an entry point runs; dirty records that a
	// change arrived meanwhile.
	hold  int
	dirty bool
}

// New creates an editor with the Select tool active on an empty page, or on
// the document given with WithDocument.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.fill()

	e := &Editor{
		store:    o.store,
		history:  history.New(o.config.HistoryCapacity),
		cfg:      o.config,
		renderer: o.renderer,
		backend:  o.backend,
		loader:   o.loader,
		logger:   o.logger,
		onError:  o.onError,
		zoom:     1,
		pending:  make(chan func(), pendingBuffer),
	}
	e.env = &tool.Env{
		Store:   e.store,
		History: e.history,
		Config:  e.cfg,
		Zoom:    func() float64 { return e.zoom },
		Layer:   func() string { return e.activeLayer },
		Refresh: e.changed,
		Report:  e.notify,
		Logger:  e.logger,
	}
	e.tools = map[tool.Name]tool.Tool{
		tool.SelectTool:  tool.NewSelect(e.env),
		tool.PenTool:     tool.NewPen(e.env),
		tool.NodeTool:    tool.NewNodeEdit(e.env),
		tool.RectTool:    tool.NewCreate(e.env, shape.TypeRect),
		tool.CircleTool:  tool.NewCreate(e.env, shape.TypeCircle),
		tool.PolygonTool: tool.NewCreate(e.env, shape.TypePolygon),
		tool.StarTool:    tool.NewCreate(e.env, shape.TypeStar),
		tool.TextTool:    tool.NewText(e.env),
	}
	e.active = e.tools[tool.SelectTool]

	e.setPage(document.NewEmptyDocument("Untitled", defaultPageWidth, defaultPageHeight))
	if o.document != nil {
		if err := e.loadDocument(o.document); err != nil {
			e.report(err)
		}
	}
	e.unsubscribe = e.store.Subscribe(e.changed)
	return e
}

// Close detaches the editor from its store. A gesture in progress is settled
// first.
func (e *Editor) Close() {
	e.active.OnDeactivate()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Store returns the state container the editor writes to.
func (e *Editor) Store() store.Store { return e.store }

// History returns the undo history.
func (e *Editor) History() *history.History { return e.history }

// Tool returns the name of the active tool.
func (e *Editor) Tool() tool.Name { return e.active.Name() }

// SetTool switches tools. The outgoing tool commits or discards its gesture.
func (e *Editor) SetTool(name tool.Name) error {
	next, ok := e.tools[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if next == e.active {
		return nil
	}
	e.batch(func() {
		e.active.OnDeactivate()
		e.active = next
		e.active.OnActivate()
		e.logger.Debug("tool switched", "tool", name)
		e.dirty = true
	})
	return nil
}

// settle ends any gesture in progress so commands from outside the tool do not
// interleave with it.
func (e *Editor) settle() {
	e.active.OnDeactivate()
	e.active.OnActivate()
}

// Undo reverts the newest history entry.
func (e *Editor) Undo() bool {
	var ok bool
	e.batch(func() {
		e.settle()
		cmd := e.history.Peek()
		if ok = e.history.Undo(); ok {
			e.logger.Debug("command undone", "command", cmd.Name())
		}
	})
	return ok
}

// Redo reapplies the newest undone entry.
func (e *Editor) Redo() bool {
	var ok bool
	e.batch(func() {
		e.settle()
		if ok = e.history.Redo(); ok {
			e.logger.Debug("command redone", "command", e.history.Peek().Name())
		}
	})
	return ok
}

func (e *Editor) execute(cmd history.Command) {
	e.history.Execute(cmd)
	e.logger.Debug("command executed", "command", cmd.Name())
}

// report logs err and hands it to the OnError callback.
func (e *Editor) report(err error) {
	e.logger.Warn("editor error", "error", err)
	e.notify(err)
}

// notify hands err to the host without logging; tools log on their own.
func (e *Editor) notify(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}

// batch runs fn and renders once afterwards if anything changed.
func (e *Editor) batch(fn func()) {
	e.hold++
	defer func() {
		e.hold--
		if e.hold == 0 && e.dirty {
			e.dirty = false
			e.Render()
		}
	}()
	fn()
}

func (e *Editor) changed() {
	if e.hold > 0 {
		e.dirty = true
		return
	}
	e.Render()
}

// Scene returns what the renderer would draw now.
func (e *Editor) Scene() render.Scene {
	sc := render.Scene{
		Shapes:    e.store.Shapes(),
		Selection: e.store.Selection(),
		Layers:    e.Layers(),
		Preview:   e.active.Preview(),
		Zoom:      e.zoom,
		Pan:       e.pan,
	}
	if sc.Preview.TransformHandles {
		if box, ok := shape.CombinedBounds(store.Selected(e.store)); ok {
			sc.Handles = tool.TransformHandles(box, e.zoom, e.cfg)
		}
	}
	return sc
}

// Render draws the current scene.
func (e *Editor) Render() {
	e.renderer.DrawScene(e.Scene())
}

// Layers returns a copy of the layer list.
func (e *Editor) Layers() []shape.Layer {
	return slices.Clone(e.layers)
}

// ActiveLayer returns the id of the layer new shapes go on.
func (e *Editor) ActiveLayer() string { return e.activeLayer }

// SetActiveLayer chooses the layer new shapes go on.
func (e *Editor) SetActiveLayer(id string) error {
	if _, ok := shape.FindLayer(e.layers, id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	e.activeLayer = id
	return nil
}

// AddLayer appends a layer. Layer edits are not recorded in the history.
func (e *Editor) AddLayer(name, color string, mode shape.LayerMode) (shape.Layer, error) {
	if !mode.Valid() {
		return shape.Layer{}, fmt.Errorf("editor: invalid layer mode %q", mode)
	}
	l := shape.NewLayer(name, color, mode)
	e.batch(func() {
		e.layers = append(e.layers, l)
		e.dirty = true
	})
	return l, nil
}

func (e *Editor) setPage(doc *document.Document) {
	e.page = *doc
	e.page.Shapes = nil
	e.layers = slices.Clone(doc.Layers)
	e.activeLayer = ""
	if len(e.layers) > 0 {
		e.activeLayer = e.layers[0].ID
	}
}

// Document snapshots the page: metadata, layers and a deep copy of the shapes.
func (e *Editor) Document() *document.Document {
	doc := e.page
	doc.Layers = e.Layers()
	doc.Shapes = document.Shapes(shape.CloneAll(e.store.Shapes()))
	return &doc
}

// LoadDocument replaces the page. The history and the selection are cleared.
func (e *Editor) LoadDocument(doc *document.Document) error {
	var err error
	e.batch(func() { err = e.loadDocument(doc) })
	return err
}

func (e *Editor) loadDocument(doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	e.settle()
	e.setPage(doc)
	e.history.Clear()
	e.store.SetShapes(shape.CloneAll(doc.Shapes))
	e.store.SetSelection(nil)
	e.dirty = true
	e.logger.Debug("document loaded", "id", doc.ID, "shapes", len(doc.Shapes))
	return nil
}
