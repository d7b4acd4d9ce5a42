package shape

// Style holds optional per-path overrides of the layer's appearance.
type Style struct {
	StrokeColor *string  `json:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	FillColor   *string  `json:"fillColor,omitempty"`
}

// Clone returns a copy that shares no pointers with s.
func (s Style) Clone() Style {
	var out Style
	if s.StrokeColor != nil {
		v := *s.StrokeColor
		out.StrokeColor = &v
	}
	if s.StrokeWidth != nil {
		v := *s.StrokeWidth
		out.StrokeWidth = &v
	}
	if s.FillColor != nil {
		v := *s.FillColor
		out.FillColor = &v
	}
	return out
}

// Merge returns s with every field set in patch overriding it.
func (s Style) Merge(patch Style) Style {
	out := s.Clone()
	p := patch.Clone()
	if p.StrokeColor != nil {
		out.StrokeColor = p.StrokeColor
	}
	if p.StrokeWidth != nil {
		out.StrokeWidth = p.StrokeWidth
	}
	if p.FillColor != nil {
		out.FillColor = p.FillColor
	}
	return out
}

// StrokeColorOr returns the stroke override or def.
func (s Style) StrokeColorOr(def string) string {
	if s.StrokeColor != nil {
		return *s.StrokeColor
	}
	return def
}

// StrokeWidthOr returns the stroke width override or def.
func (s Style) StrokeWidthOr(def float64) float64 {
	if s.StrokeWidth != nil {
		return *s.StrokeWidth
	}
	return def
}

// FillColorOr returns the fill override or def.
func (s Style) FillColorOr(def string) string {
	if s.FillColor != nil {
		return *s.FillColor
	}
	return def
}
