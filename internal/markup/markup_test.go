package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

func assertBounds(t *testing.T, want geom.Rect, got geom.Rect, delta float64) {
	t.Helper()
	assert.InDelta(t, want.MinX, got.MinX, delta, "MinX")
	assert.InDelta(t, want.MinY, got.MinY, delta, "MinY")
	assert.InDelta(t, want.MaxX, got.MaxX, delta, "MaxX")
	assert.InDelta(t, want.MaxY, got.MaxY, delta, "MaxY")
}

func TestImportElements(t *testing.T) {
	src := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">
  <!-- every supported element -->
  <rect x="10" y="10" width="30" height="20"/>
  <circle cx="100" cy="50" r="10"/>
  <ellipse cx="150" cy="50" rx="20" ry="10"/>
  <line x1="0" y1="0" x2="10" y2="10"/>
  <polyline points="0,0 10,0 10,10"/>
  <polygon points="0 0, 5 0, 5 5"/>
  <path d="M0 0 L10 0 L10 10 Z M20 20 L30 20 L30 30 Z"/>
  <text x="0" y="0">ignored</text>
</svg>`

	paths, err := ImportPaths(src, "layer_x")
	require.NoError(t, err)
	require.Len(t, paths, 8)

	for _, p := range paths {
		assert.Equal(t, "layer_x", p.LayerID)
		assert.Equal(t, shape.TypeImported, p.Type)
	}
	assertBounds(t, geom.Rect{MinX: 10, MinY: 10, MaxX: 40, MaxY: 30}, paths[0].Bounds(), 1e-9)
	assertBounds(t, geom.Rect{MinX: 90, MinY: 40, MaxX: 110, MaxY: 60}, paths[1].Bounds(), 1e-6)
	assertBounds(t, geom.Rect{MinX: 130, MinY: 40, MaxX: 170, MaxY: 60}, paths[2].Bounds(), 1e-6)
	assert.False(t, paths[3].Closed)
	assert.False(t, paths[4].Closed)
	assert.Len(t, paths[4].Nodes, 3)
	assert.True(t, paths[5].Closed)
	assert.True(t, paths[6].Closed)
	assert.Len(t, paths[6].Nodes, 3)
	assertBounds(t, geom.Rect{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30}, paths[7].Bounds(), 1e-9)
}

func TestImportAppliesTransforms(t *testing.T) {
	src := `<svg>
  <g transform="translate(10,20)">
    <rect x="0" y="0" width="10" height="10" transform="scale(2)"/>
  </g>
  <rect x="0" y="0" width="1" height="1"/>
  <line x1="10" y1="5" x2="0" y2="5" transform="rotate(90 5 5)"/>
</svg>`

	paths, err := ImportPaths(src, "")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assertBounds(t, geom.Rect{MinX: 10, MinY: 20, MaxX: 30, MaxY: 40}, paths[0].Bounds(), 1e-9)
	assertBounds(t, geom.Rect{MaxX: 1, MaxY: 1}, paths[1].Bounds(), 1e-9)

	a, b := paths[2].Nodes[0], paths[2].Nodes[1]
	assert.InDelta(t, 5, a.X, 1e-9)
	assert.InDelta(t, 10, a.Y, 1e-9)
	assert.InDelta(t, 5, b.X, 1e-9)
	assert.InDelta(t, 0, b.Y, 1e-9)
	assert.True(t, a.In.Equals(a.Anchor(), 1e-9), "handles follow the transform")
}

func TestImportViewBox(t *testing.T) {
	src := `<svg width="200" height="200" viewBox="10 10 100 100"><rect x="10" y="10" width="50" height="50"/></svg>`
	paths, err := ImportPaths(src, "")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assertBounds(t, geom.Rect{MaxX: 100, MaxY: 100}, paths[0].Bounds(), 1e-9)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrNoSVG},
		{"not svg", "<html><body/></html>", ErrNoSVG},
		{"path data", `<svg><path d="M0 0 L x y"/></svg>`, ErrParse},
		{"number", `<svg><rect width="wide" height="1"/></svg>`, ErrParse},
		{"points", `<svg><polygon points="0 0 a b"/></svg>`, ErrParse},
		{"transform arity", `<svg><rect width="1" height="1" transform="rotate(1,2)"/></svg>`, ErrParse},
		{"transform name", `<svg><g transform="spin(3)"></g></svg>`, ErrParse},
		{"viewBox", `<svg viewBox="0 0 10"></svg>`, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportPaths(tt.src, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseNumbers(t *testing.T) {
	got, err := parseNumbers(" 10-5.5.5,1e1\n")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, -5.5, 0.5, 10}, got)

	_, err = parseNumbers("1 two")
	assert.Error(t, err)

	v, err := parseNumber(" 12px")
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)
	v, err = parseNumber("")
	require.NoError(t, err)
	assert.Zero(t, v)
	_, err = parseNumber("3em")
	assert.Error(t, err)
}

func TestParseTransform(t *testing.T) {
	m, err := parseTransform("translate(10) scale(2, 3)")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(12, 3), m.Apply(geom.Pt(1, 1)))

	m, err = parseTransform("matrix(1 0 0 1 5 6)")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(5, 6), m.Apply(geom.Pt(0, 0)))

	m, err = parseTransform("")
	require.NoError(t, err)
	assert.True(t, m.IsIdentity())

	_, err = parseTransform("translate(1,2) junk")
	assert.ErrorIs(t, err, ErrParse)
}

func TestExportGroupsByLayerAndReimports(t *testing.T) {
	layers := shape.DefaultLayers()
	cut, score, engrave := layers[0], layers[1], layers[2]

	rect := shape.NewPath(cut.ID, shape.TypeRect)
	rect.LayoutInBox(geom.Pt(10, 10), geom.Pt(40, 30))
	circle := shape.NewPath(score.ID, shape.TypeCircle)
	circle.LayoutInBox(geom.Pt(50, 50), geom.Pt(70, 70))
	blue := "#123456"
	circle.StrokeColor = &blue
	label := shape.NewText(engrave.ID, 0, 0, "sans-serif", 12)
	label.Text = "a<b"
	inner := shape.NewPath(cut.ID, shape.TypePen, shape.NewNode(0, 0), shape.NewNode(5, 5))
	stray := shape.NewPath("layer_gone", shape.TypePen, shape.NewNode(1, 1), shape.NewNode(2, 2))

	out := Export([]shape.Shape{rect, circle, label, shape.NewGroup(inner), stray}, layers, 300, 200)

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="200" viewBox="0 0 300 200">`))
	assert.Equal(t, 4, strings.Count(out, "<g "))
	assert.Contains(t, out, `data-mode="CUT" stroke="#ff0000"`)
	assert.Contains(t, out, `stroke="#123456"`)
	assert.Contains(t, out, "a&lt;b")
	assert.Contains(t, out, `<g id="unassigned"`)

	paths, err := ImportPaths(out, "")
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assertBounds(t, rect.Bounds(), paths[0].Bounds(), 1e-9)
	assertBounds(t, inner.Bounds(), paths[1].Bounds(), 1e-9)
	assertBounds(t, circle.Bounds(), paths[2].Bounds(), 1e-3)
	assertBounds(t, stray.Bounds(), paths[3].Bounds(), 1e-9)
	assert.True(t, paths[0].Closed)
	assert.False(t, paths[1].Closed)
}

func TestExportSkipsEmptyLayers(t *testing.T) {
	out := Export(nil, shape.DefaultLayers(), 10, 10)
	assert.NotContains(t, out, "<g ")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}
