package shape

import (
	"sync/atomic"
	"unicode/utf8"
)

// TextMeasurer provides font metrics for text bounds.
type TextMeasurer interface {
	// LineWidth returns the advance width of one line of t's text, before scaling.
	LineWidth(t *Text, line string) float64
	// LineHeight returns the distance between baselines, before scaling.
	LineHeight(t *Text) float64
	// Ascent returns the distance from the top of a line to its baseline.
	Ascent(t *Text) float64
}

type measurerBox struct{ m TextMeasurer }

var measurerPtr atomic.Pointer[measurerBox]

func init() {
	measurerPtr.Store(&measurerBox{approxMeasurer{}})
}

// SetTextMeasurer installs the metrics source used by Text.Bounds. Passing nil
// restores the built-in approximation.
func SetTextMeasurer(m TextMeasurer) {
	if m == nil {
		m = approxMeasurer{}
	}
	measurerPtr.Store(&measurerBox{m})
}

// Measurer returns the active metrics source.
func Measurer() TextMeasurer {
	return measurerPtr.Load().m
}

// approxMeasurer assumes an average glyph advance of 0.6 em.
type approxMeasurer struct{}

func (approxMeasurer) LineWidth(t *Text, line string) float64 {
	return 0.6 * t.FontSize * float64(utf8.RuneCountInString(line))
}

func (approxMeasurer) LineHeight(t *Text) float64 {
	return 1.2 * t.FontSize
}

func (approxMeasurer) Ascent(t *Text) float64 {
	return 0.9 * t.FontSize
}
