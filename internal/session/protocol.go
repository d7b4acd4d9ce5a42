package session

import (
	"encoding/json"

	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/render"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Input (host → editor)
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeKeyDown     = "key.down"
	TypeToolSet     = "tool.set"

	// Edits
	TypeUndo        = "edit.undo"
	TypeRedo        = "edit.redo"
	TypeDelete      = "edit.delete"
	TypeGroup       = "edit.group"
	TypeUngroup     = "edit.ungroup"
	TypeBoolean     = "edit.boolean"
	TypeStyle       = "edit.style"
	TypeSetLayer    = "edit.layer"
	TypeParams      = "edit.params"
	TypeNodeKind    = "edit.nodeKind"
	TypeText        = "edit.text"
	TypeConvertText = "edit.convertText"
	TypeSelect      = "edit.select"
	TypeImport      = "edit.import"

	// Layers
	TypeLayerAdd      = "layer.add"
	TypeLayerActivate = "layer.activate"

	// View
	TypeZoom = "view.zoom"
	TypePan  = "view.pan"

	// Document
	TypeDocLoad   = "doc.load"
	TypeDocGet    = "doc.get"
	TypeDocSync   = "doc.sync"
	TypeDocExport = "doc.export"
	TypeDocMarkup = "doc.markup"

	// Editor → host
	TypeScene   = "scene"
	TypeWelcome = "welcome"
	TypeError   = "error"
)

type ToolPayload struct {
	Tool tool.Name `json:"tool"`
}

type BooleanPayload struct {
	Op string `json:"op"`
}

type LayerPayload struct {
	LayerID string `json:"layerId"`
}

type AddLayerPayload struct {
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Mode  shape.LayerMode `json:"mode"`
}

type NodeKindPayload struct {
	Kind shape.NodeKind `json:"kind"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type ConvertTextPayload struct {
	ID string `json:"id,omitempty"`
}

type SelectPayload struct {
	IDs []string `json:"ids"`
}

type ImportPayload struct {
	Markup string `json:"markup"`
}

type ImportResultPayload struct {
	Count int `json:"count"`
}

// ZoomPayload sets the zoom about a screen point.
type ZoomPayload struct {
	Zoom float64 `json:"zoom"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type PanPayload struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ExportPayload asks for SVG; a zero size means the page size.
type ExportPayload struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type MarkupPayload struct {
	Markup string `json:"markup"`
}

// ScenePayload is one frame for the host to draw.
type ScenePayload struct {
	Commands  []render.DrawCommand `json:"commands"`
	Selection []string             `json:"selection"`
	Tool      tool.Name            `json:"tool"`
	Preview   tool.Preview         `json:"preview"`
	Zoom      float64              `json:"zoom"`
	Pan       geom.Point           `json:"pan"`
	CanUndo   bool                 `json:"canUndo"`
	CanRedo   bool                 `json:"canRedo"`
}

type WelcomePayload struct {
	SessionID   string        `json:"sessionId"`
	ClientID    string        `json:"clientId"`
	Tools       []tool.Name   `json:"tools"`
	Layers      []shape.Layer `json:"layers"`
	ActiveLayer string        `json:"activeLayer"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Message string `json:"message"`
}
