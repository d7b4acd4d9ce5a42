// Package markup reads and writes SVG. Import keeps only geometry: every
// drawable element becomes one or more paths in canvas coordinates.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/parse/v2/xml"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/pathconv"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

var (
	// ErrNoSVG is returned when the markup has no svg root element.
	ErrNoSVG = errors.New("markup: no svg element")
	// ErrParse wraps malformed markup, path data, numbers and transforms.
	ErrParse = errors.New("markup: parse error")
)

// ImportPaths parses SVG markup and returns its path, rect, circle, ellipse,
// line, polyline and polygon elements as paths on layerID. Transforms on the
// elements, their groups and the root viewBox are applied to the nodes.
func ImportPaths(src string, layerID string) ([]*shape.Path, error) {
	l := xml.NewLexer(parse.NewInputString(src))
	stack := []geom.Matrix2D{geom.Identity()}
	sawSVG := false
	var out []*shape.Path

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("%w: %w", ErrParse, l.Err())
			}
			if !sawSVG {
				return nil, ErrNoSVG
			}
			return out, nil
		case xml.StartTagToken:
			tag := string(data[1:])
			attrs := map[string]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if len(val) >= 2 {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}

			if tag == "svg" && !sawSVG {
				sawSVG = true
			} else if !sawSVG {
				return nil, ErrNoSVG
			}

			m := stack[len(stack)-1]
			if tag == "svg" {
				view, err := viewBox(attrs)
				if err != nil {
					return nil, err
				}
				m = m.Multiply(view)
			}
			if v, ok := attrs["transform"]; ok {
				t, err := parseTransform(v)
				if err != nil {
					return nil, err
				}
				m = m.Multiply(t)
			}

			paths, err := element(tag, attrs, layerID)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				if !m.IsIdentity() {
					for i := range p.Nodes {
						p.Nodes[i].Map(m.Apply)
					}
				}
				out = append(out, p)
			}

			if tt != xml.StartTagCloseVoidToken {
				stack = append(stack, m)
			}
		case xml.EndTagToken:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func element(tag string, attrs map[string]string, layerID string) ([]*shape.Path, error) {
	num := func(names ...string) ([]float64, error) {
		out := make([]float64, len(names))
		for i, n := range names {
			v, err := parseNumber(attrs[n])
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s: %w", ErrParse, tag, n, err)
			}
			out[i] = v
		}
		return out, nil
	}
	closedPath := func(nodes []shape.Node) []*shape.Path {
		p := shape.NewPath(layerID, shape.TypeImported, nodes...)
		p.Closed = true
		return []*shape.Path{p}
	}

	switch tag {
	case "path":
		cp, err := canvas.ParseSVGPath(attrs["d"])
		if err != nil {
			return nil, fmt.Errorf("%w: path data: %w", ErrParse, err)
		}
		return pathconv.FromCanvas(cp, &shape.Path{LayerID: layerID}), nil
	case "rect":
		v, err := num("x", "y", "width", "height")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, nil
		}
		return closedPath(shape.RectNodes(geom.Pt(v[0], v[1]), geom.Pt(v[0]+v[2], v[1]+v[3]))), nil
	case "circle":
		v, err := num("cx", "cy", "r")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 {
			return nil, nil
		}
		return closedPath(shape.EllipseNodes(geom.Pt(v[0], v[1]), v[2], v[2])), nil
	case "ellipse":
		v, err := num("cx", "cy", "rx", "ry")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, nil
		}
		return closedPath(shape.EllipseNodes(geom.Pt(v[0], v[1]), v[2], v[3])), nil
	case "line":
		v, err := num("x1", "y1", "x2", "y2")
		if err != nil {
			return nil, err
		}
		p := shape.NewPath(layerID, shape.TypeImported, shape.NewNode(v[0], v[1]), shape.NewNode(v[2], v[3]))
		return []*shape.Path{p}, nil
	case "polyline", "polygon":
		pts, err := parseNumbers(attrs["points"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s points: %w", ErrParse, tag, err)
		}
		var nodes []shape.Node
		for i := 0; i+1 < len(pts); i += 2 {
			nodes = append(nodes, shape.NewNode(pts[i], pts[i+1]))
		}
		if len(nodes) < 2 {
			return nil, nil
		}
		p := shape.NewPath(layerID, shape.TypeImported, nodes...)
		p.Closed = tag == "polygon"
		return []*shape.Path{p}, nil
	}
	return nil, nil
}

// viewBox maps the root viewBox onto the width and height of the svg element
// when both are plain user units.
func viewBox(attrs map[string]string) (geom.Matrix2D, error) {
	v, ok := attrs["viewBox"]
	if !ok {
		return geom.Identity(), nil
	}
	box, err := parseNumbers(v)
	if err != nil || len(box) != 4 {
		return geom.Identity(), fmt.Errorf("%w: bad viewBox %q", ErrParse, v)
	}
	m := geom.Translate(-box[0], -box[1])
	w, errW := parseNumber(attrs["width"])
	h, errH := parseNumber(attrs["height"])
	if errW == nil && errH == nil && w > 0 && h > 0 && box[2] > 0 && box[3] > 0 {
		m = geom.Scale(w/box[2], h/box[3]).Multiply(m)
	}
	return m, nil
}

// parseNumber reads a length in user units; an absent value is zero.
func parseNumber(v string) (float64, error) {
	b := parse.TrimWhitespace([]byte(v))
	b = bytes.TrimSuffix(b, []byte("px"))
	if len(b) == 0 {
		return 0, nil
	}
	f, n := strconv.ParseFloat(b)
	if n == 0 || n != len(b) {
		return 0, fmt.Errorf("bad number %q", v)
	}
	return f, nil
}

// parseNumbers reads an SVG number list. Numbers are separated by commas,
// whitespace, or nothing when the next one starts with a sign or a dot.
func parseNumbers(v string) ([]float64, error) {
	b := []byte(v)
	out := make([]float64, 0, 6)
	for {
		b = skipSeparators(b)
		if len(b) == 0 {
			return out, nil
		}
		f, n := strconv.ParseFloat(b)
		if n == 0 {
			return nil, fmt.Errorf("bad number list %q", v)
		}
		out = append(out, f)
		b = b[n:]
	}
}

func skipSeparators(b []byte) []byte {
	for len(b) > 0 && (b[0] == ',' || parse.IsWhitespace(b[0])) {
		b = b[1:]
	}
	return b
}
