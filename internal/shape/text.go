package shape

import (
	"math"
	"strings"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

// uniformScaleTolerance is how close sx and sy must be for a scale to count as uniform.
const uniformScaleTolerance = 0.001

// Text is a run of text anchored at its top-left corner (X, Y). Rotation and
// ScaleX/ScaleY apply about that anchor.
type Text struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight"`
	FontStyle  string  `json:"fontStyle"`
	Rotation   float64 `json:"rotation"`
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	LayerID    string  `json:"layerId"`
}

// NewText returns a text with a fresh id and unit scale.
func NewText(layerID string, x, y float64, family string, size float64) *Text {
	return &Text{
		ID:         typeid.NewTextID(),
		X:          x,
		Y:          y,
		FontFamily: family,
		FontSize:   size,
		FontWeight: "normal",
		FontStyle:  "normal",
		ScaleX:     1,
		ScaleY:     1,
		LayerID:    layerID,
	}
}

func (t *Text) ShapeID() string { return t.ID }
func (t *Text) sealed()         {}

// Lines splits the content on newlines.
func (t *Text) Lines() []string {
	return strings.Split(t.Text, "\n")
}

// Transform maps the text's local frame (origin at the anchor, y down) to canvas space.
func (t *Text) Transform() geom.Matrix2D {
	return geom.AnchoredTransform(t.X, t.Y, t.ScaleX, t.ScaleY, t.Rotation)
}

// LocalBounds returns the unrotated, unscaled layout box.
func (t *Text) LocalBounds() geom.Rect {
	m := Measurer()
	w := 0.0
	lines := t.Lines()
	for _, l := range lines {
		w = math.Max(w, m.LineWidth(t, l))
	}
	h := float64(len(lines)) * m.LineHeight(t)
	return geom.Rect{MaxX: w, MaxY: h}
}

func (t *Text) Bounds() geom.Rect {
	return t.Transform().TransformRect(t.LocalBounds())
}

func (t *Text) Move(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

func (t *Text) Rotate(angle float64, center geom.Point) {
	p := geom.RotatePoint(geom.Pt(t.X, t.Y), center, angle)
	t.X, t.Y = p.X, p.Y
	t.Rotation += angle
}

// Scale folds a uniform scale into FontSize; a non-uniform one stretches
// ScaleX/ScaleY. A negative uniform factor keeps its flip in ScaleX/ScaleY.
func (t *Text) Scale(sx, sy float64, origin geom.Point) {
	p := geom.ScalePoint(geom.Pt(t.X, t.Y), origin, sx, sy)
	t.X, t.Y = p.X, p.Y
	if math.Abs(sx-sy) < uniformScaleTolerance {
		t.FontSize *= math.Abs(sx)
		if sx < 0 {
			t.ScaleX, t.ScaleY = -t.ScaleX, -t.ScaleY
		}
		return
	}
	t.ScaleX *= sx
	t.ScaleY *= sy
}

func (t *Text) Clone() Shape {
	c := *t
	return &c
}

func (t *Text) CloneNew() Shape {
	c := *t
	c.ID = typeid.NewTextID()
	return &c
}

func (t *Text) RestoreFrom(src *Text) {
	id := t.ID
	*t = *src
	t.ID = id
}
