package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

func TestSampleDocumentRoundTrip(t *testing.T) {
	d := NewSampleDocument("demo")
	require.NoError(t, d.Validate())

	data, err := json.Marshal(d)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, d.ID, back.ID)
	assert.Equal(t, d.Layers, back.Layers)
	require.Len(t, back.Shapes, len(d.Shapes))

	for i := range d.Shapes {
		assert.Equal(t, d.Shapes[i], back.Shapes[i])
	}
	g, ok := back.Shapes[2].(*shape.Group)
	require.True(t, ok)
	assert.Len(t, g.Children, 2)
	assert.Equal(t, shape.TypeStar, g.Children[0].(*shape.Path).Type)
}

func TestShapesCarryKind(t *testing.T) {
	p := shape.NewPath("", shape.TypePen, shape.NewNode(1, 2))
	data, err := json.Marshal(Shapes{p, shape.NewGroup(), shape.NewText("", 0, 0, "serif", 10)})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "path", raw[0]["kind"])
	assert.Equal(t, "pen", raw[0]["type"])
	assert.Equal(t, "group", raw[1]["kind"])
	assert.Equal(t, []any{}, raw[1]["children"])
	assert.Equal(t, "text", raw[2]["kind"])
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	valid := func() *Document { return NewSampleDocument("x") }

	tests := []struct {
		name   string
		mutate func(d *Document)
	}{
		{"zero page", func(d *Document) { d.Width = 0 }},
		{"duplicate layer", func(d *Document) { d.Layers = append(d.Layers, d.Layers[0]) }},
		{"bad mode", func(d *Document) { d.Layers[0].Mode = "WELD" }},
		{"duplicate shape", func(d *Document) { d.Shapes = append(d.Shapes, d.Shapes[0].Clone()) }},
		{"unknown layer", func(d *Document) { d.Shapes[0].(*shape.Path).LayerID = "layer_nope" }},
		{"nested duplicate", func(d *Document) {
			g := d.Shapes[2].(*shape.Group)
			g.Children = append(g.Children, d.Shapes[0].Clone())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			data, err := json.Marshal(d)
			require.NoError(t, err)
			_, err = Parse(data)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}

	_, err := Parse([]byte(`{"width":1,"height":1,"shapes":[{"kind":"blob"}]}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	_, err = Parse([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
