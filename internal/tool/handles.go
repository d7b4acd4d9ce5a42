package tool

import (
	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
)

// HandleKind names a transform handle of the selection box.
type HandleKind int

const (
	NoHandle HandleKind = iota
	Rotate
	NW
	N
	NE
	E
	SE
	S
	SW
	W
)

// IsCorner reports whether k scales both axes.
func (k HandleKind) IsCorner() bool {
	return k == NW || k == NE || k == SE || k == SW
}

var handleNames = [...]string{"", "rotate", "nw", "n", "ne", "e", "se", "s", "sw", "w"}

func (k HandleKind) String() string {
	if k < 0 || int(k) >= len(handleNames) {
		return ""
	}
	return handleNames[k]
}

type Handle struct {
	Kind HandleKind `json:"kind"`
	Pos  geom.Point `json:"pos"`
}

// TransformHandles lays out the rotate handle above r and the eight resize
// handles on its corners and edges, in that order.
func TransformHandles(r geom.Rect, zoom float64, cfg config.Editor) []Handle {
	c := r.Center()
	return []Handle{
		{Rotate, geom.Pt(c.X, r.MinY-cfg.RotateHandleOffset/zoom)},
		{NW, geom.Pt(r.MinX, r.MinY)},
		{N, geom.Pt(c.X, r.MinY)},
		{NE, geom.Pt(r.MaxX, r.MinY)},
		{E, geom.Pt(r.MaxX, c.Y)},
		{SE, geom.Pt(r.MaxX, r.MaxY)},
		{S, geom.Pt(c.X, r.MaxY)},
		{SW, geom.Pt(r.MinX, r.MaxY)},
		{W, geom.Pt(r.MinX, c.Y)},
	}
}

// hitHandle returns the first handle within half a handle size of p.
func hitHandle(handles []Handle, p geom.Point, size float64) HandleKind {
	for _, h := range handles {
		if h.Pos.Equals(p, size/2) {
			return h.Kind
		}
	}
	return NoHandle
}

// opposite returns the point a resize from handle k scales away from.
func opposite(k HandleKind, r geom.Rect) geom.Point {
	c := r.Center()
	switch k {
	case NW:
		return geom.Pt(r.MaxX, r.MaxY)
	case N:
		return geom.Pt(c.X, r.MaxY)
	case NE:
		return geom.Pt(r.MinX, r.MaxY)
	case E:
		return geom.Pt(r.MinX, c.Y)
	case SE:
		return geom.Pt(r.MinX, r.MinY)
	case S:
		return geom.Pt(c.X, r.MinY)
	case SW:
		return geom.Pt(r.MaxX, r.MinY)
	case W:
		return geom.Pt(r.MaxX, c.Y)
	}
	return c
}
