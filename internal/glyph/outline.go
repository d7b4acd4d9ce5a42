package glyph

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/pathconv"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// Loader extracts the outlines of a text's glyphs, laid out the way Measurer
// measures them and mapped through the text's transform.
type Loader struct {
	lib *Library
}

func NewLoader(lib *Library) *Loader {
	return &Loader{lib: lib}
}

// LoadOutline returns one closed path per glyph contour. Unlike measurement
// it does not fall back: an unknown family fails with ErrFontNotFound.
func (l *Loader) LoadOutline(ctx context.Context, t *shape.Text) ([]*shape.Path, error) {
	f, err := l.lib.Font(t.FontFamily, t.FontWeight, t.FontStyle)
	if err != nil {
		return nil, err
	}
	if t.FontSize <= 0 {
		return nil, nil
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(math.Round(t.FontSize * 64))
	metrics, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("glyph: metrics: %w", err)
	}
	ascent, lineHeight := fromFixed(metrics.Ascent), fromFixed(metrics.Height)
	m := t.Transform()
	template := &shape.Path{LayerID: t.LayerID}

	var out []*shape.Path
	for li, line := range t.Lines() {
		x := 0.0
		baseline := ascent + float64(li)*lineHeight
		var prev sfnt.GlyphIndex
		for i, r := range line {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			gi, err := f.GlyphIndex(&buf, r)
			if err != nil {
				return nil, fmt.Errorf("glyph: index %q: %w", r, err)
			}
			if i > 0 {
				if k, err := f.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
					x += fromFixed(k)
				} else if !errors.Is(err, sfnt.ErrNotFound) {
					return nil, fmt.Errorf("glyph: kern: %w", err)
				}
			}
			segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
			if err != nil {
				return nil, fmt.Errorf("glyph: load %q: %w", r, err)
			}
			if cp := outline(segs, geom.Translate(x, baseline), m); !cp.Empty() {
				out = append(out, pathconv.FromCanvas(cp, template)...)
			}
			adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
			if err != nil {
				return nil, fmt.Errorf("glyph: advance %q: %w", r, err)
			}
			x += fromFixed(adv)
			prev = gi
		}
	}
	return out, nil
}

// outline converts sfnt segments, placed at origin in the text's local frame,
// to a canvas path in canvas space. Every contour is closed.
func outline(segs sfnt.Segments, origin, m geom.Matrix2D) *canvas.Path {
	full := m.Multiply(origin)
	pt := func(p fixed.Point26_6) geom.Point {
		return full.Apply(geom.Pt(fromFixed(p.X), fromFixed(p.Y)))
	}

	cp := &canvas.Path{}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				cp.Close()
			}
			a := pt(s.Args[0])
			cp.MoveTo(a.X, a.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			a := pt(s.Args[0])
			cp.LineTo(a.X, a.Y)
		case sfnt.SegmentOpQuadTo:
			c, a := pt(s.Args[0]), pt(s.Args[1])
			cp.QuadTo(c.X, c.Y, a.X, a.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, a := pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			cp.CubeTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		}
	}
	if open {
		cp.Close()
	}
	return cp
}
