package markup

import (
	"fmt"
	"math"
	"strings"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
)

// parseTransform reads an SVG transform list. Functions compose left to
// right, so the rightmost one applies to the element first.
func parseTransform(v string) (geom.Matrix2D, error) {
	m := geom.Identity()
	rest := v
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			if strings.TrimFunc(rest, isSeparator) != "" {
				return m, fmt.Errorf("%w: bad transform %q", ErrParse, v)
			}
			return m, nil
		}
		end := strings.IndexByte(rest, ')')
		if end < open {
			return m, fmt.Errorf("%w: bad transform %q", ErrParse, v)
		}
		fun := strings.ToLower(strings.TrimFunc(rest[:open], isSeparator))
		d, err := parseNumbers(rest[open+1 : end])
		if err != nil {
			return m, fmt.Errorf("%w: transform %s: %w", ErrParse, fun, err)
		}
		t, err := transformFunc(fun, d)
		if err != nil {
			return m, err
		}
		m = m.Multiply(t)
		rest = rest[end+1:]
	}
}

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func transformFunc(fun string, d []float64) (geom.Matrix2D, error) {
	bad := func() (geom.Matrix2D, error) {
		return geom.Identity(), fmt.Errorf("%w: transform %s takes %d values", ErrParse, fun, len(d))
	}
	deg := math.Pi / 180
	switch fun {
	case "matrix":
		if len(d) != 6 {
			return bad()
		}
		return geom.Matrix2D{d[0], d[1], d[2], d[3], d[4], d[5]}, nil
	case "translate":
		switch len(d) {
		case 1:
			return geom.Translate(d[0], 0), nil
		case 2:
			return geom.Translate(d[0], d[1]), nil
		}
		return bad()
	case "scale":
		switch len(d) {
		case 1:
			return geom.Scale(d[0], d[0]), nil
		case 2:
			return geom.Scale(d[0], d[1]), nil
		}
		return bad()
	case "rotate":
		switch len(d) {
		case 1:
			return geom.Rotate(d[0] * deg), nil
		case 3:
			return geom.Translate(d[1], d[2]).
				Multiply(geom.Rotate(d[0] * deg)).
				Multiply(geom.Translate(-d[1], -d[2])), nil
		}
		return bad()
	case "skewx":
		if len(d) != 1 {
			return bad()
		}
		return geom.Matrix2D{1, 0, math.Tan(d[0] * deg), 1, 0, 0}, nil
	case "skewy":
		if len(d) != 1 {
			return bad()
		}
		return geom.Matrix2D{1, math.Tan(d[0] * deg), 0, 1, 0, 0}, nil
	}
	return geom.Identity(), fmt.Errorf("%w: unknown transform %q", ErrParse, fun)
}
