// Package render turns editor state into draw commands for a Canvas2D host.
// It only reads shapes; nothing here mutates the model.
package render

import (
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

// Scene is the full state needed to draw one frame.
type Scene struct {
	Shapes    []shape.Shape
	Selection []string
	Layers    []shape.Layer
	Preview   tool.Preview
	// Handles are the transform handles of the selection, empty unless
	// Preview.TransformHandles is set.
	Handles []tool.Handle
	Zoom    float64
	Pan     geom.Point
}

// Selected reports whether the top-level shape id is selected.
func (s Scene) Selected(id string) bool {
	for _, sel := range s.Selection {
		if sel == id {
			return true
		}
	}
	return false
}

// Renderer draws scenes. The editor calls DrawScene after every change that
// affects appearance.
type Renderer interface {
	DrawScene(Scene)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Scene)

func (f RendererFunc) DrawScene(s Scene) { f(s) }

// Nop discards every scene.
var Nop Renderer = RendererFunc(func(Scene) {})
