// Package document is the JSON form of a drawing exchanged with hosts.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

// ErrInvalidDocument wraps every validation failure.
var ErrInvalidDocument = errors.New("document: invalid")

type Document struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Version   int           `json:"version"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
	Layers    []shape.Layer `json:"layers"`
	Shapes    Shapes        `json:"shapes"`
}

// Kind discriminates shape variants in JSON.
type Kind string

const (
	KindPath  Kind = "path"
	KindGroup Kind = "group"
	KindText  Kind = "text"
)

// Shapes is a shape list that encodes each entry with a "kind" field.
type Shapes []shape.Shape

type pathJSON struct {
	Kind Kind `json:"kind"`
	*shape.Path
}

type textJSON struct {
	Kind Kind `json:"kind"`
	*shape.Text
}

type groupJSON struct {
	Kind Kind `json:"kind"`
	*shape.Group
	Children Shapes `json:"children"`
}

func (s Shapes) MarshalJSON() ([]byte, error) {
	out := make([]any, len(s))
	for i, sh := range s {
		switch v := sh.(type) {
		case *shape.Path:
			out[i] = pathJSON{KindPath, v}
		case *shape.Text:
			out[i] = textJSON{KindText, v}
		case *shape.Group:
			out[i] = groupJSON{KindGroup, v, Shapes(v.Children)}
		default:
			return nil, fmt.Errorf("document: unknown shape %T", sh)
		}
	}
	return json.Marshal(out)
}

func (s *Shapes) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Shapes, 0, len(raw))
	for _, r := range raw {
		var head struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return err
		}
		switch head.Kind {
		case KindPath:
			v := pathJSON{Path: &shape.Path{}}
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			out = append(out, v.Path)
		case KindText:
			v := textJSON{Text: &shape.Text{}}
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			out = append(out, v.Text)
		case KindGroup:
			v := groupJSON{Group: &shape.Group{}}
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			v.Group.Children = v.Children
			out = append(out, v.Group)
		default:
			return fmt.Errorf("%w: unknown shape kind %q", ErrInvalidDocument, head.Kind)
		}
	}
	*s = out
	return nil
}

// Validate checks the page size, that layer and shape ids are present and
// unique, and that every shape references a known layer or none.
func (d *Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: page size %gx%g", ErrInvalidDocument, d.Width, d.Height)
	}
	layers := make(map[string]bool, len(d.Layers))
	for _, l := range d.Layers {
		if l.ID == "" || layers[l.ID] {
			return fmt.Errorf("%w: layer id %q", ErrInvalidDocument, l.ID)
		}
		if !l.Mode.Valid() {
			return fmt.Errorf("%w: layer %q has mode %q", ErrInvalidDocument, l.ID, l.Mode)
		}
		layers[l.ID] = true
	}

	var err error
	seen := map[string]bool{}
	shape.Walk(d.Shapes, func(sh shape.Shape) bool {
		id := sh.ShapeID()
		switch {
		case id == "" || seen[id]:
			err = fmt.Errorf("%w: shape id %q", ErrInvalidDocument, id)
		case shape.LayerOf(sh) != "" && !layers[shape.LayerOf(sh)]:
			err = fmt.Errorf("%w: shape %q on unknown layer %q", ErrInvalidDocument, id, shape.LayerOf(sh))
		}
		seen[id] = true
		return err == nil
	})
	return err
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// NewEmptyDocument creates a page with the default layers and no shapes.
func NewEmptyDocument(name string, width, height float64) *Document {
	return &Document{
		ID:      typeid.NewDocID(),
		Name:    name,
		Version: 1,
		Width:   width,
		Height:  height,
		Layers:  shape.DefaultLayers(),
		Shapes:  Shapes{},
	}
}
