package glyph

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// maxFaces bounds the face cache; sizes change continuously while scaling text.
const maxFaces = 256

type faceKey struct {
	family, weight, style string
	size                  float64
}

// Measurer measures text with the metrics of the resolved font. Families that
// cannot be resolved are measured with the embedded sans-serif font.
type Measurer struct {
	lib *Library

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

var _ shape.TextMeasurer = (*Measurer)(nil)

func NewMeasurer(lib *Library) *Measurer {
	return &Measurer{lib: lib, faces: make(map[faceKey]font.Face)}
}

// face returns the cached face for t. Callers hold m.mu.
func (m *Measurer) face(t *shape.Text) font.Face {
	key := faceKey{t.FontFamily, t.FontWeight, t.FontStyle, t.FontSize}
	if f, ok := m.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(m.lib.FontOrDefault(t.FontFamily, t.FontWeight, t.FontStyle), &opentype.FaceOptions{
		Size:    t.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	if len(m.faces) >= maxFaces {
		clear(m.faces)
	}
	m.faces[key] = f
	return f
}

func (m *Measurer) LineWidth(t *shape.Text, line string) float64 {
	if t.FontSize <= 0 || line == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.face(t)
	if f == nil {
		return 0
	}
	return fromFixed(font.MeasureString(f, line))
}

func (m *Measurer) LineHeight(t *shape.Text) float64 {
	if t.FontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.face(t)
	if f == nil {
		return 0
	}
	return fromFixed(f.Metrics().Height)
}

func (m *Measurer) Ascent(t *shape.Text) float64 {
	if t.FontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.face(t)
	if f == nil {
		return 0
	}
	return fromFixed(f.Metrics().Ascent)
}

// fromFixed converts a 26.6 fixed point value to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
