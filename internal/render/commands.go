package render

import (
	"encoding/json"
	"fmt"

	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// Draw operations.
const (
	OpSave      = "save"
	OpRestore   = "restore"
	OpPath      = "path"
	OpText      = "text"
	OpOutline   = "outline"
	OpHandle    = "handle"
	OpMarquee   = "marquee"
	OpNode      = "node"
	OpControl   = "control"
	OpGuideLine = "guide"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // One of the Op constants
	ObjectID    string        `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for path-like ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width in canvas units
	Dash        []float64     `json:"dash,omitempty"`        // Line dash pattern
	Text        string        `json:"text,omitempty"`        // Content for text ops
	Font        string        `json:"font,omitempty"`        // CSS font shorthand for text ops
	Handle      string        `json:"handle,omitempty"`      // Handle kind for handle ops
	Selected    bool          `json:"selected,omitempty"`
	Editing     bool          `json:"editing,omitempty"`
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// PathData returns the segments of p as Canvas2D path commands.
func PathData(p *shape.Path) []PathCommand {
	if len(p.Nodes) == 0 {
		return nil
	}
	first := p.Nodes[0]
	out := []PathCommand{{"M", first.X, first.Y}}
	for i := 0; i < p.SegmentCount(); i++ {
		seg := p.Segment(i)
		if seg.IsLine(0) {
			out = append(out, PathCommand{"L", seg.P3.X, seg.P3.Y})
			continue
		}
		out = append(out, PathCommand{"C", seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y, seg.P3.X, seg.P3.Y})
	}
	if p.Closed {
		out = append(out, PathCommand{"Z"})
	}
	return out
}

func rectPath(r geom.Rect) []PathCommand {
	return []PathCommand{
		{"M", r.MinX, r.MinY},
		{"L", r.MaxX, r.MinY},
		{"L", r.MaxX, r.MaxY},
		{"L", r.MinX, r.MaxY},
		{"Z"},
	}
}

func square(c geom.Point, size float64) []PathCommand {
	h := size / 2
	return rectPath(geom.Rect{MinX: c.X - h, MinY: c.Y - h, MaxX: c.X + h, MaxY: c.Y + h})
}

// ViewTransform maps canvas space to screen space: scale by zoom, then pan.
func ViewTransform(zoom float64, pan geom.Point) geom.Matrix2D {
	return geom.Translate(pan.X, pan.Y).Multiply(geom.Scale(zoom, zoom))
}

// Compile generates the draw command buffer for a scene in painter's order:
// shapes back to front, then selection outlines, node markers, the marquee
// and the transform handles.
func Compile(sc Scene, cfg config.Editor) []DrawCommand {
	zoom := sc.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c := compiler{scene: sc, cfg: cfg, px: 1 / zoom}

	c.emit(DrawCommand{Op: OpSave, Transform: ViewTransform(zoom, sc.Pan).ToSlice()})
	for _, sh := range sc.Shapes {
		c.shape(sh, sc.Selected(sh.ShapeID()))
	}
	c.outlines()
	c.nodes()
	c.marquee()
	c.handles()
	c.emit(DrawCommand{Op: OpRestore})
	return c.out
}

type compiler struct {
	scene Scene
	cfg   config.Editor
	px    float64 // one screen pixel in canvas units
	out   []DrawCommand
}

func (c *compiler) emit(cmd DrawCommand) {
	c.out = append(c.out, cmd)
}

func (c *compiler) layerColor(id string) string {
	if l, ok := shape.FindLayer(c.scene.Layers, id); ok && l.Color != "" {
		return l.Color
	}
	return c.cfg.StrokeColor
}

func (c *compiler) shape(sh shape.Shape, selected bool) {
	switch s := sh.(type) {
	case *shape.Path:
		stroke := s.StrokeColorOr(c.layerColor(s.LayerID))
		if selected {
			stroke = c.cfg.SelectionColor
		}
		c.emit(DrawCommand{
			Op:          OpPath,
			ObjectID:    s.ID,
			Path:        PathData(s),
			Fill:        s.FillColorOr(""),
			Stroke:      stroke,
			StrokeWidth: s.StrokeWidthOr(c.px),
			Selected:    selected,
		})
	case *shape.Group:
		for _, child := range s.Children {
			c.shape(child, selected)
		}
	case *shape.Text:
		fill := c.layerColor(s.LayerID)
		if selected {
			fill = c.cfg.SelectionColor
		}
		c.emit(DrawCommand{
			Op:        OpText,
			ObjectID:  s.ID,
			Transform: s.Transform().ToSlice(),
			Text:      s.Text,
			Font:      Font(s),
			Fill:      fill,
			Selected:  selected,
			Editing:   s.ID == c.scene.Preview.EditingTextID,
		})
	}
}

// Font returns the CSS font shorthand for t.
func Font(t *shape.Text) string {
	return fmt.Sprintf("%s %s %gpx %s", t.FontStyle, t.FontWeight, t.FontSize, t.FontFamily)
}

func (c *compiler) outlines() {
	for _, sh := range c.scene.Shapes {
		if !c.scene.Selected(sh.ShapeID()) {
			continue
		}
		c.emit(DrawCommand{
			Op:          OpOutline,
			ObjectID:    sh.ShapeID(),
			Path:        rectPath(sh.Bounds()),
			Stroke:      c.cfg.SelectionColor,
			StrokeWidth: c.px,
			Dash:        []float64{4 * c.px, 4 * c.px},
		})
	}
}

func (c *compiler) nodes() {
	id := c.scene.Preview.EditPathID
	if id == "" {
		return
	}
	p, ok := shape.Find(c.scene.Shapes, id).(*shape.Path)
	if !ok {
		return
	}
	size := c.cfg.HandleSize * c.px
	for i, n := range p.Nodes {
		selected := i == c.scene.Preview.SelectedNode
		fill := "#ffffff"
		if selected {
			fill = c.cfg.SelectionColor
		}
		c.emit(DrawCommand{
			Op:          OpNode,
			ObjectID:    p.ID,
			Path:        square(n.Anchor(), size),
			Fill:        fill,
			Stroke:      c.cfg.SelectionColor,
			StrokeWidth: c.px,
			Selected:    selected,
		})
		if !selected {
			continue
		}
		for _, h := range []geom.Point{n.In, n.Out} {
			if h.Equals(n.Anchor(), 0) {
				continue
			}
			c.emit(DrawCommand{
				Op:          OpGuideLine,
				Path:        []PathCommand{{"M", n.X, n.Y}, {"L", h.X, h.Y}},
				Stroke:      c.cfg.SelectionColor,
				StrokeWidth: c.px,
			})
			c.emit(DrawCommand{
				Op:          OpControl,
				ObjectID:    p.ID,
				Path:        square(h, size*0.75),
				Fill:        c.cfg.SelectionColor,
				StrokeWidth: c.px,
			})
		}
	}
}

func (c *compiler) marquee() {
	r := c.scene.Preview.Marquee
	if r == nil {
		return
	}
	cmd := DrawCommand{
		Op:          OpMarquee,
		Path:        rectPath(*r),
		Stroke:      c.cfg.SelectionColor,
		StrokeWidth: c.px,
	}
	if c.scene.Preview.Crossing {
		cmd.Dash = []float64{4 * c.px, 4 * c.px}
	}
	c.emit(cmd)
}

func (c *compiler) handles() {
	if !c.scene.Preview.TransformHandles {
		return
	}
	size := c.cfg.HandleSize * c.px
	for _, h := range c.scene.Handles {
		c.emit(DrawCommand{
			Op:          OpHandle,
			Handle:      h.Kind.String(),
			Path:        square(h.Pos, size),
			Fill:        "#ffffff",
			Stroke:      c.cfg.SelectionColor,
			StrokeWidth: c.px,
		})
	}
}

// ToJSON serializes draw commands to JSON.
func ToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
