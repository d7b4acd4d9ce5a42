package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

func path() *shape.Path {
	return shape.NewPath("", shape.TypePen, shape.NewNode(0, 0), shape.NewNode(1, 1))
}

func TestMemoryNotifiesSubscribers(t *testing.T) {
	m := NewMemory()
	calls := 0
	cancel := m.Subscribe(func() {
		calls++
		_ = m.Shapes()
	})

	m.SetShapes([]shape.Shape{path()})
	m.SetSelection([]string{"x"})
	assert.Equal(t, 2, calls)

	cancel()
	m.SetSelection(nil)
	assert.Equal(t, 2, calls)
}

func TestMemoryCopiesSlices(t *testing.T) {
	m := NewMemory()
	sel := []string{"a"}
	m.SetSelection(sel)
	sel[0] = "b"
	assert.Equal(t, []string{"a"}, m.Selection())

	got := m.Selection()
	got[0] = "c"
	assert.Equal(t, []string{"a"}, m.Selection())
}

func TestInsertRemoveReplace(t *testing.T) {
	a, b, c := path(), path(), path()
	m := NewMemory(a)

	Append(m, b)
	Insert(m, c, 0)
	Insert(m, c, 2)
	require.Len(t, m.Shapes(), 3)
	assert.Equal(t, 0, IndexOf(m, c.ID))
	assert.Equal(t, 2, IndexOf(m, b.ID))

	i, err := Remove(m, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	_, err = Remove(m, a.ID)
	assert.ErrorIs(t, err, ErrShapeNotFound)

	require.NoError(t, Replace(m, c.ID, a))
	assert.Equal(t, 0, IndexOf(m, a.ID))
	assert.Equal(t, -1, IndexOf(m, c.ID))
}

func TestFindAndSelected(t *testing.T) {
	inner := path()
	g := shape.NewGroup(inner)
	other := shape.NewPath("", shape.TypeRect, shape.RectNodes(geom.Pt(0, 0), geom.Pt(1, 1))...)
	m := NewMemory(other, g)
	m.SetSelection([]string{g.ID, other.ID})

	assert.Same(t, inner, Find(m, inner.ID))
	sel := Selected(m)
	require.Len(t, sel, 2)
	assert.Same(t, other, sel[0])
}
