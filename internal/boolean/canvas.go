package boolean

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/eballetbo/LaserReady-sub000/internal/pathconv"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// CanvasBackend clips with tdewolff/canvas. The zero value is ready to use.
type CanvasBackend struct {
	mu   sync.Mutex
	next Handle
	live map[Handle]*canvas.Path
}

var _ Backend = (*CanvasBackend)(nil)

func NewCanvasBackend() *CanvasBackend {
	return &CanvasBackend{}
}

func (b *CanvasBackend) store(p *canvas.Path) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live == nil {
		b.live = make(map[Handle]*canvas.Path)
	}
	b.next++
	b.live[b.next] = p
	return b.next
}

func (b *CanvasBackend) load(h Handle) (*canvas.Path, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.live[h]
	return p, ok
}

func (b *CanvasBackend) ToBackend(p *shape.Path) Handle {
	return b.store(pathconv.ToCanvas(p))
}

func (b *CanvasBackend) FromBackend(h Handle, template *shape.Path) []*shape.Path {
	p, ok := b.load(h)
	if !ok || p.Empty() {
		return nil
	}
	return pathconv.FromCanvas(p, template)
}

func (b *CanvasBackend) Apply(op Op, a, c Handle) (res Handle, err error) {
	pa, ok := b.load(a)
	if !ok {
		return 0, fmt.Errorf("%w: unknown handle %d", ErrBackend, a)
	}
	pc, ok := b.load(c)
	if !ok {
		return 0, fmt.Errorf("%w: unknown handle %d", ErrBackend, c)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBackend, r)
		}
	}()

	var out *canvas.Path
	switch op {
	case Unite:
		out = pa.Or(pc)
	case Subtract:
		out = pa.Not(pc)
	case Intersect:
		out = pa.And(pc)
	case Exclude:
		out = pa.Xor(pc)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedOp, op)
	}
	return b.store(out), nil
}

func (b *CanvasBackend) Release(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.live, h)
}

// Live returns the number of handles not yet released.
func (b *CanvasBackend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}
