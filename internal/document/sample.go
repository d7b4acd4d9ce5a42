package document

import (
	"time"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// NewSampleDocument returns a small drawing touching each layer: a rounded
// frame to cut, a star to score and a label to engrave.
func NewSampleDocument(name string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)
	d := NewEmptyDocument(name, 400, 300)
	d.CreatedAt = now
	d.UpdatedAt = now
	cut, score, engrave := d.Layers[0].ID, d.Layers[1].ID, d.Layers[2].ID

	frame := shape.NewPath(cut, shape.TypeRect)
	frame.LayoutInBox(geom.Pt(20, 20), geom.Pt(380, 280))

	hole := shape.NewPath(cut, shape.TypeCircle)
	hole.LayoutInBox(geom.Pt(340, 40), geom.Pt(360, 60))

	star := shape.NewPath(score, shape.TypeStar)
	star.LayoutInBox(geom.Pt(60, 60), geom.Pt(180, 180))

	hex := shape.NewPath(score, shape.TypePolygon)
	hex.LayoutInBox(geom.Pt(220, 80), geom.Pt(320, 180))

	label := shape.NewText(engrave, 60, 210, "sans-serif", 28)
	label.Text = "LaserReady"

	d.Shapes = Shapes{frame, hole, shape.NewGroup(star, hex), label}
	return d
}
