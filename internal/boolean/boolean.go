// Package boolean combines paths with unite, subtract, intersect and exclude.
// Clipping itself is delegated to a Backend; this package only converts shapes
// in and out and folds the operation across the inputs.
package boolean

import (
	"errors"
	"fmt"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

var (
	// ErrBackend wraps failures raised by the clipping backend.
	ErrBackend = errors.New("boolean: backend failure")
	// ErrUnsupportedOp is returned for an Op outside the four known operations.
	ErrUnsupportedOp = errors.New("boolean: unsupported operation")
	// ErrEmptyResult is returned when the operation leaves nothing to draw.
	ErrEmptyResult = errors.New("boolean: empty result")
)

type Op int

const (
	Unite Op = iota
	Subtract
	Intersect
	Exclude
)

func (op Op) String() string {
	switch op {
	case Unite:
		return "unite"
	case Subtract:
		return "subtract"
	case Intersect:
		return "intersect"
	case Exclude:
		return "exclude"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// ParseOp is the inverse of Op.String.
func ParseOp(s string) (Op, error) {
	for _, op := range []Op{Unite, Subtract, Intersect, Exclude} {
		if op.String() == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOp, s)
}

// Handle is an opaque reference to a backend-owned path.
type Handle uint64

// Backend is a two-operand polygon clipper. Every handle it returns must be
// given back through Release.
type Backend interface {
	ToBackend(p *shape.Path) Handle
	// FromBackend expands h into one path per contour, copying layer and style
	// from template.
	FromBackend(h Handle, template *shape.Path) []*shape.Path
	Apply(op Op, a, b Handle) (Handle, error)
	Release(h Handle)
}

// Perform folds op left to right across paths: the result of op(0, 1) becomes
// the left operand against path 2, and so on. Fewer than two paths are
// returned unchanged. Results carry fresh ids and the first input's layer and
// style. All backend handles are released before Perform returns.
func Perform(b Backend, paths []*shape.Path, op Op) ([]*shape.Path, error) {
	if len(paths) < 2 {
		return paths, nil
	}
	if op < Unite || op > Exclude {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOp, op)
	}

	var handles []Handle
	defer func() {
		for _, h := range handles {
			b.Release(h)
		}
	}()
	track := func(h Handle) Handle {
		handles = append(handles, h)
		return h
	}

	acc := track(b.ToBackend(paths[0]))
	for _, p := range paths[1:] {
		next := track(b.ToBackend(p))
		res, err := b.Apply(op, acc, next)
		if err != nil {
			return nil, err
		}
		acc = track(res)
	}

	out := b.FromBackend(acc, paths[0])
	if len(out) == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}
