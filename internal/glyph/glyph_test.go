package glyph

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

func text(s string, size float64) *shape.Text {
	t := shape.NewText("layer_cut", 100, 50, "sans-serif", size)
	t.Text = s
	return t
}

func TestLibraryResolvesFamilies(t *testing.T) {
	lib := NewLibrary("")

	regular, err := lib.Font("sans-serif", "normal", "normal")
	require.NoError(t, err)
	again, err := lib.Font("Sans-Serif", "400", "normal")
	require.NoError(t, err)
	assert.Same(t, regular, again)

	bold, err := lib.Font("sans-serif", "700", "normal")
	require.NoError(t, err)
	assert.NotSame(t, regular, bold)

	_, err = lib.Font("monospace", "normal", "italic")
	assert.NoError(t, err)

	_, err = lib.Font("Comic Sans", "normal", "normal")
	assert.ErrorIs(t, err, ErrFontNotFound)
	assert.NotNil(t, lib.FontOrDefault("Comic Sans", "normal", "normal"))
}

func TestLibraryReadsFontDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Custom.ttf"), goregular.TTF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o600))
	lib := NewLibrary(dir)

	_, err := lib.Font("Custom", "normal", "normal")
	assert.NoError(t, err)
	_, err = lib.Font("Custom", "bold", "normal")
	assert.NoError(t, err, "missing variants fall back to the family file")
	_, err = lib.Font("Other", "normal", "normal")
	assert.ErrorIs(t, err, ErrFontNotFound)
	_, err = lib.Font("Broken", "normal", "normal")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFontNotFound)
}

func TestMeasurer(t *testing.T) {
	m := NewMeasurer(NewLibrary(""))

	small := text("", 10)
	big := text("", 20)
	assert.Zero(t, m.LineWidth(small, ""))
	narrow := m.LineWidth(small, "ii")
	wide := m.LineWidth(small, "MM")
	assert.Greater(t, narrow, 0.0)
	assert.Greater(t, wide, narrow)
	assert.InDelta(t, 2*wide, m.LineWidth(big, "MM"), 0.1)

	assert.Greater(t, m.LineHeight(small), m.Ascent(small))
	assert.InDelta(t, 2*m.LineHeight(small), m.LineHeight(big), 0.1)

	unknown := text("", 10)
	unknown.FontFamily = "Nope"
	assert.Equal(t, wide, m.LineWidth(unknown, "MM"))
}

func TestMeasurerDrivesTextBounds(t *testing.T) {
	m := NewMeasurer(NewLibrary(""))
	shape.SetTextMeasurer(m)
	t.Cleanup(func() { shape.SetTextMeasurer(nil) })

	txt := text("Hi\nthere", 24)
	b := txt.Bounds()
	assert.InDelta(t, 100, b.MinX, 1e-9)
	assert.InDelta(t, 50, b.MinY, 1e-9)
	assert.InDelta(t, m.LineWidth(txt, "there"), b.Width(), 1e-9)
	assert.InDelta(t, 2*m.LineHeight(txt), b.Height(), 1e-9)
}

func TestLoadOutline(t *testing.T) {
	lib := NewLibrary("")
	shape.SetTextMeasurer(NewMeasurer(lib))
	t.Cleanup(func() { shape.SetTextMeasurer(nil) })

	txt := text("H", 40)
	paths, err := NewLoader(lib).LoadOutline(context.Background(), txt)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	box := txt.Bounds()
	for _, p := range paths {
		assert.True(t, p.Closed)
		assert.Equal(t, "layer_cut", p.LayerID)
		assert.Equal(t, shape.TypeImported, p.Type)
		b := p.Bounds()
		assert.GreaterOrEqual(t, b.MinX, box.MinX-1e-6)
		assert.LessOrEqual(t, b.MaxX, box.MaxX+1e-6)
		assert.GreaterOrEqual(t, b.MinY, box.MinY-1e-6)
		assert.LessOrEqual(t, b.MaxY, box.MaxY+1e-6)
	}

	ring, err := NewLoader(lib).LoadOutline(context.Background(), text("o", 40))
	require.NoError(t, err)
	assert.Len(t, ring, 2)
}

func TestLoadOutlineFollowsTransform(t *testing.T) {
	lib := NewLibrary("")
	loader := NewLoader(lib)

	plain := text("l", 40)
	rotated := text("l", 40)
	rotated.Rotation = math.Pi / 2

	a, err := loader.LoadOutline(context.Background(), plain)
	require.NoError(t, err)
	b, err := loader.LoadOutline(context.Background(), rotated)
	require.NoError(t, err)
	require.Len(t, b, len(a))

	anchor := geom.Pt(100, 50)
	for i := range a {
		for j, n := range a[i].Nodes {
			want := geom.RotatePoint(n.Anchor(), anchor, math.Pi/2)
			got := b[i].Nodes[j].Anchor()
			assert.InDelta(t, want.X, got.X, 1e-6)
			assert.InDelta(t, want.Y, got.Y, 1e-6)
		}
	}
}

func TestLoadOutlineEdgeCases(t *testing.T) {
	loader := NewLoader(NewLibrary(""))

	paths, err := loader.LoadOutline(context.Background(), text("   ", 20))
	require.NoError(t, err)
	assert.Empty(t, paths)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.LoadOutline(ctx, text("abc", 20))
	assert.ErrorIs(t, err, context.Canceled)

	missing := text("abc", 20)
	missing.FontFamily = "Nope"
	_, err = loader.LoadOutline(context.Background(), missing)
	assert.ErrorIs(t, err, ErrFontNotFound)
}
