package pathconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

func TestRoundTripRect(t *testing.T) {
	src := shape.NewPath("layer_a", shape.TypeRect, shape.RectNodes(geom.Pt(0, 0), geom.Pt(40, 20))...)
	src.Closed = true
	width := 2.0
	src.StrokeWidth = &width

	got := FromCanvas(ToCanvas(src), src)
	require.Len(t, got, 1)
	p := got[0]
	assert.True(t, p.Closed)
	assert.Len(t, p.Nodes, 4)
	assert.Equal(t, "layer_a", p.LayerID)
	assert.Equal(t, shape.TypeImported, p.Type)
	assert.NotEqual(t, src.ID, p.ID)
	require.NotNil(t, p.StrokeWidth)
	assert.Equal(t, 2.0, *p.StrokeWidth)

	b := p.Bounds()
	assert.InDelta(t, 40, b.Width(), 1e-9)
	assert.InDelta(t, 20, b.Height(), 1e-9)
}

func TestRoundTripKeepsControlPoints(t *testing.T) {
	src := shape.NewPath("", shape.TypePen,
		shape.Node{X: 0, Y: 0, In: geom.Pt(0, 0), Out: geom.Pt(10, -20)},
		shape.Node{X: 50, Y: 0, In: geom.Pt(40, -20), Out: geom.Pt(50, 0)},
	)

	got := FromCanvas(ToCanvas(src), nil)
	require.Len(t, got, 1)
	p := got[0]
	assert.False(t, p.Closed)
	require.Len(t, p.Nodes, 2)
	assert.InDelta(t, 10, p.Nodes[0].Out.X, 1e-9)
	assert.InDelta(t, -20, p.Nodes[0].Out.Y, 1e-9)
	assert.InDelta(t, 40, p.Nodes[1].In.X, 1e-9)
}

func TestFromCanvasSplitsContours(t *testing.T) {
	cp := &canvas.Path{}
	cp.MoveTo(0, 0)
	cp.LineTo(10, 0)
	cp.LineTo(10, 10)
	cp.Close()
	cp.MoveTo(20, 0)
	cp.LineTo(30, 0)
	cp.LineTo(30, 10)
	cp.Close()

	got := FromCanvas(cp, nil)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Nodes, 3)
	assert.True(t, got[1].Closed)
}
