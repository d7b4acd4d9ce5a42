package shape

import "github.com/eballetbo/LaserReady-sub000/internal/typeid"

// LayerMode tells downstream export what the machine does with a layer's shapes.
type LayerMode string

const (
	ModeCut     LayerMode = "CUT"
	ModeScore   LayerMode = "SCORE"
	ModeEngrave LayerMode = "ENGRAVE"
)

// Valid reports whether m is one of the known modes.
func (m LayerMode) Valid() bool {
	return m == ModeCut || m == ModeScore || m == ModeEngrave
}

type Layer struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Mode  LayerMode `json:"mode"`
}

func NewLayer(name, color string, mode LayerMode) Layer {
	return Layer{ID: typeid.NewLayerID(), Name: name, Color: color, Mode: mode}
}

// DefaultLayers returns one layer per mode.
func DefaultLayers() []Layer {
	return []Layer{
		NewLayer("Cut", "#ff0000", ModeCut),
		NewLayer("Score", "#0000ff", ModeScore),
		NewLayer("Engrave", "#000000", ModeEngrave),
	}
}

// FindLayer returns the layer with the given id.
func FindLayer(layers []Layer, id string) (Layer, bool) {
	for _, l := range layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// LayerOf returns the layer id of a path or text. Groups have no layer of their own.
func LayerOf(s Shape) string {
	switch v := s.(type) {
	case *Path:
		return v.LayerID
	case *Text:
		return v.LayerID
	}
	return ""
}
