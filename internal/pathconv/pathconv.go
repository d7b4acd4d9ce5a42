// Package pathconv converts between shape paths and tdewolff/canvas paths.
package pathconv

import (
	"github.com/tdewolff/canvas"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// mergeEpsilon is the distance under which a contour's last anchor is folded
// into its first when the contour closes.
const mergeEpsilon = 1e-6

// ToCanvas builds a canvas path from p. Straight segments become LineTo, the
// rest CubeTo with p's absolute control points.
func ToCanvas(p *shape.Path) *canvas.Path {
	out := &canvas.Path{}
	if len(p.Nodes) == 0 {
		return out
	}
	first := p.Nodes[0]
	out.MoveTo(first.X, first.Y)
	for i := 0; i < p.SegmentCount(); i++ {
		seg := p.Segment(i)
		if seg.IsLine(0) {
			out.LineTo(seg.P3.X, seg.P3.Y)
			continue
		}
		out.CubeTo(seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y, seg.P3.X, seg.P3.Y)
	}
	if p.Closed {
		out.Close()
	}
	return out
}

// FromCanvas splits cp into its contours and returns one shape path per
// contour. Layer and style are copied from template, every result gets a
// fresh id and the imported type.
func FromCanvas(cp *canvas.Path, template *shape.Path) []*shape.Path {
	var out []*shape.Path
	for _, sub := range cp.Split() {
		if p := contour(sub, template); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func contour(cp *canvas.Path, template *shape.Path) *shape.Path {
	var nodes []shape.Node
	closed := false
	for s := cp.Scanner(); s.Scan(); {
		end := pt(s.End())
		switch s.Cmd() {
		case canvas.MoveToCmd:
			nodes = append(nodes[:0], shape.NewNode(end.X, end.Y))
		case canvas.LineToCmd, canvas.ArcToCmd:
			nodes = append(nodes, shape.NewNode(end.X, end.Y))
		case canvas.QuadToCmd:
			// raise to cubic
			start, c := pt(s.Start()), pt(s.CP1())
			c1 := start.Add(c.Sub(start).Mul(2.0 / 3.0))
			c2 := end.Add(c.Sub(end).Mul(2.0 / 3.0))
			nodes = appendCubic(nodes, c1, c2, end)
		case canvas.CubeToCmd:
			nodes = appendCubic(nodes, pt(s.CP1()), pt(s.CP2()), end)
		case canvas.CloseCmd:
			closed = true
		}
	}
	if len(nodes) == 0 {
		return nil
	}
	if closed && len(nodes) > 1 {
		last := nodes[len(nodes)-1]
		if last.Anchor().Equals(nodes[0].Anchor(), mergeEpsilon) {
			nodes[0].In = last.In
			nodes = nodes[:len(nodes)-1]
		}
	}

	p := shape.NewPath("", shape.TypeImported, nodes...)
	p.Closed = closed
	if template != nil {
		p.LayerID = template.LayerID
		p.Style = template.Style.Clone()
	}
	return p
}

func appendCubic(nodes []shape.Node, c1, c2, end geom.Point) []shape.Node {
	if len(nodes) == 0 {
		nodes = append(nodes, shape.NewNode(0, 0))
	}
	nodes[len(nodes)-1].Out = c1
	n := shape.NewNode(end.X, end.Y)
	n.In = c2
	return append(nodes, n)
}

func pt(p canvas.Point) geom.Point {
	return geom.Pt(p.X, p.Y)
}
