package shape

import (
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

// Type records how a path was made. Parametric types regenerate their nodes from Params.
type Type string

const (
	TypeNone     Type = ""
	TypeRect     Type = "rect"
	TypeCircle   Type = "circle"
	TypePolygon  Type = "polygon"
	TypeStar     Type = "star"
	TypePen      Type = "pen"
	TypeImported Type = "imported"
)

// Params are the regeneration parameters of polygons and stars.
type Params struct {
	Sides       int     `json:"sides,omitempty"`
	Points      int     `json:"points,omitempty"`
	InnerRadius float64 `json:"innerRadius,omitempty"`
}

// DefaultParams returns the parameters a freshly drawn shape of type t starts with.
func DefaultParams(t Type) *Params {
	switch t {
	case TypePolygon:
		return &Params{Sides: 6}
	case TypeStar:
		return &Params{Points: 5, InnerRadius: 0.5}
	}
	return nil
}

// Path is a sequence of bezier nodes, optionally closed back to its first node.
type Path struct {
	ID      string  `json:"id"`
	Nodes   []Node  `json:"nodes"`
	Closed  bool    `json:"closed"`
	LayerID string  `json:"layerId"`
	Type    Type    `json:"type,omitempty"`
	Params  *Params `json:"params,omitempty"`
	Style
}

// NewPath returns a path with a fresh id.
func NewPath(layerID string, t Type, nodes ...Node) *Path {
	return &Path{
		ID:      typeid.NewPathID(),
		Nodes:   nodes,
		LayerID: layerID,
		Type:    t,
		Params:  DefaultParams(t),
	}
}

func (p *Path) ShapeID() string { return p.ID }
func (p *Path) sealed()         {}

func (p *Path) Move(dx, dy float64) {
	for i := range p.Nodes {
		p.Nodes[i].Translate(dx, dy)
	}
}

func (p *Path) Rotate(angle float64, center geom.Point) {
	for i := range p.Nodes {
		p.Nodes[i].Map(func(q geom.Point) geom.Point { return geom.RotatePoint(q, center, angle) })
	}
}

func (p *Path) Scale(sx, sy float64, origin geom.Point) {
	for i := range p.Nodes {
		p.Nodes[i].Map(func(q geom.Point) geom.Point { return geom.ScalePoint(q, origin, sx, sy) })
	}
}

// Bounds returns the tight bounds of the drawn curve. A path without segments
// reports the bounds of its anchors.
func (p *Path) Bounds() geom.Rect {
	n := p.SegmentCount()
	if n == 0 {
		pts := make([]geom.Point, len(p.Nodes))
		for i, nd := range p.Nodes {
			pts[i] = nd.Anchor()
		}
		r, _ := geom.BoundingBox(pts)
		return r
	}
	r := p.Segment(0).Bounds()
	for i := 1; i < n; i++ {
		r = r.Union(p.Segment(i).Bounds())
	}
	return r
}

func (p *Path) Clone() Shape {
	return p.clonePath()
}

func (p *Path) CloneNew() Shape {
	c := p.clonePath()
	c.ID = typeid.NewPathID()
	return c
}

func (p *Path) clonePath() *Path {
	c := *p
	c.Nodes = append([]Node(nil), p.Nodes...)
	if p.Params != nil {
		params := *p.Params
		c.Params = &params
	}
	c.Style = p.Style.Clone()
	return &c
}

// RestoreFrom copies node, closure, parametric and style state from src.
func (p *Path) RestoreFrom(src *Path) {
	p.Nodes = append(p.Nodes[:0:0], src.Nodes...)
	p.Closed = src.Closed
	p.LayerID = src.LayerID
	p.Type = src.Type
	p.Params = nil
	if src.Params != nil {
		params := *src.Params
		p.Params = &params
	}
	p.Style = src.Style.Clone()
}

// SegmentCount returns the number of drawable segments.
func (p *Path) SegmentCount() int {
	n := len(p.Nodes)
	if n < 2 {
		return 0
	}
	if p.Closed {
		return n
	}
	return n - 1
}

// Segment returns segment i, running from node i to node i+1 (wrapping for closed paths).
func (p *Path) Segment(i int) geom.CubicBez {
	a := p.Nodes[i]
	b := p.Nodes[(i+1)%len(p.Nodes)]
	return geom.CubicBez{P0: a.Anchor(), P1: a.Out, P2: b.In, P3: b.Anchor()}
}

// Polyline flattens the path with geom.FlattenSteps samples per segment.
func (p *Path) Polyline() []geom.Point {
	n := p.SegmentCount()
	if n == 0 {
		pts := make([]geom.Point, len(p.Nodes))
		for i, nd := range p.Nodes {
			pts[i] = nd.Anchor()
		}
		return pts
	}
	pts := make([]geom.Point, 0, n*geom.FlattenSteps+1)
	for i := 0; i < n; i++ {
		seg := p.Segment(i).Flatten(geom.FlattenSteps)
		if i > 0 {
			seg = seg[1:]
		}
		pts = append(pts, seg...)
	}
	if p.Closed && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// IsParametric reports whether the node layout is derived from Params.
func (p *Path) IsParametric() bool {
	return p.Params != nil && (p.Type == TypePolygon || p.Type == TypeStar)
}

// Detach turns a parametric path into a freely editable one.
func (p *Path) Detach() {
	if p.Type == TypePen || p.Type == TypeImported {
		return
	}
	p.Type = TypeNone
	p.Params = nil
}

// Centroid returns the mean of the anchors.
func (p *Path) Centroid() geom.Point {
	if len(p.Nodes) == 0 {
		return geom.Point{}
	}
	var c geom.Point
	for _, n := range p.Nodes {
		c = c.Add(n.Anchor())
	}
	return c.Mul(1 / float64(len(p.Nodes)))
}

// SetParams regenerates the nodes of a polygon or star around its centroid, using
// the farthest anchor as the outer radius. It reports false for other paths.
func (p *Path) SetParams(params Params) bool {
	if p.Type != TypePolygon && p.Type != TypeStar {
		return false
	}
	c := p.Centroid()
	r := 0.0
	for _, n := range p.Nodes {
		if d := geom.Distance(c, n.Anchor()); d > r {
			r = d
		}
	}

	switch p.Type {
	case TypePolygon:
		if params.Sides < 3 {
			return false
		}
		p.Nodes = PolygonNodes(c, r, r, params.Sides)
	case TypeStar:
		if params.Points < 2 || params.InnerRadius <= 0 {
			return false
		}
		p.Nodes = StarNodes(c, r, r, params.Points, params.InnerRadius)
	}
	p.Params = &params
	p.Closed = true
	return true
}
