// Package session hosts editors over websockets. Each connection gets its own
// editor, driven from a single goroutine that reads host messages and runs
// background completions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eballetbo/LaserReady-sub000/internal/boolean"
	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/editor"
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/render"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

var ErrUnknownMessage = errors.New("session: unknown message type")

// Sender delivers messages to the host.
type Sender interface {
	Send(msg *Message)
}

// Session binds one editor to one host connection.
type Session struct {
	ID       string
	ClientID string

	out    Sender
	cfg    config.Editor
	editor *editor.Editor
	logger *slog.Logger

	// ctx is the connection context, used for background work the session starts.
	ctx context.Context
}

// New creates a session whose editor starts on doc, or on an empty page when
// doc is nil. Scenes and errors are sent to out.
func New(ctx context.Context, id, clientID string, out Sender, cfg config.Editor, doc *document.Document, opts ...editor.Option) *Session {
	s := &Session{
		ID:       id,
		ClientID: clientID,
		out:      out,
		cfg:      cfg,
		logger:   slog.With("session", id, "client", clientID),
		ctx:      ctx,
	}
	base := []editor.Option{
		editor.WithConfig(cfg),
		editor.WithRenderer(render.RendererFunc(s.drawScene)),
		editor.WithLogger(s.logger),
		editor.OnError(func(err error) { s.sendError("", err) }),
	}
	if doc != nil {
		base = append(base, editor.WithDocument(doc))
	}
	s.editor = editor.New(append(base, opts...)...)
	return s
}

// Editor returns the session's editor. It must only be used from the
// goroutine running Run.
func (s *Session) Editor() *editor.Editor { return s.editor }

// Run handles inbound messages and background completions until inbound is
// closed or ctx is done.
func (s *Session) Run(ctx context.Context, inbound <-chan *Message) {
	defer s.editor.Close()

	s.welcome()
	s.editor.Render()
	for {
		select {
		case msg, ok := <-inbound:
			if !ok {
				return
			}
			if err := s.Handle(msg); err != nil {
				s.logger.Warn("message rejected", "type", msg.Type, "error", err)
				s.sendError(msg.Type, err)
			}
		case fn := <-s.editor.Pending():
			s.editor.Run(fn)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) welcome() {
	s.send(TypeWelcome, WelcomePayload{
		SessionID:   s.ID,
		ClientID:    s.ClientID,
		Tools:       tool.Names,
		Layers:      s.editor.Layers(),
		ActiveLayer: s.editor.ActiveLayer(),
	})
}

func (s *Session) drawScene(sc render.Scene) {
	undo, redo := s.editor.History().Len()
	s.send(TypeScene, ScenePayload{
		Commands:  render.Compile(sc, s.cfg),
		Selection: sc.Selection,
		Tool:      sc.Preview.Tool,
		Preview:   sc.Preview,
		Zoom:      sc.Zoom,
		Pan:       sc.Pan,
		CanUndo:   undo > 0,
		CanRedo:   redo > 0,
	})
}

func (s *Session) send(typ string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal payload", "type", typ, "error", err)
		return
	}
	s.out.Send(&Message{Type: typ, SessionID: s.ID, Payload: data})
}

func (s *Session) sendError(request string, err error) {
	s.send(TypeError, ErrorPayload{Request: request, Message: err.Error()})
}

func decode[T any](msg *Message) (T, error) {
	var v T
	if len(msg.Payload) == 0 {
		return v, fmt.Errorf("%s: missing payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("%s: invalid payload: %w", msg.Type, err)
	}
	return v, nil
}

// Handle applies one host message to the editor.
func (s *Session) Handle(msg *Message) error {
	ed := s.editor
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		ev, err := decode[tool.PointerEvent](msg)
		if err != nil {
			return err
		}
		switch msg.Type {
		case TypePointerDown:
			ed.PointerDown(ev)
		case TypePointerMove:
			ed.PointerMove(ev)
		default:
			ed.PointerUp(ev)
		}
	case TypeKeyDown:
		ev, err := decode[tool.KeyEvent](msg)
		if err != nil {
			return err
		}
		ed.KeyDown(ev)
	case TypeToolSet:
		p, err := decode[ToolPayload](msg)
		if err != nil {
			return err
		}
		return ed.SetTool(p.Tool)

	case TypeUndo:
		ed.Undo()
	case TypeRedo:
		ed.Redo()
	case TypeDelete:
		ed.DeleteSelection()
	case TypeGroup:
		ed.Group()
	case TypeUngroup:
		ed.Ungroup()
	case TypeBoolean:
		p, err := decode[BooleanPayload](msg)
		if err != nil {
			return err
		}
		op, err := boolean.ParseOp(p.Op)
		if err != nil {
			return err
		}
		// failures reach the host through OnError
		_ = ed.Boolean(op)
	case TypeStyle:
		patch, err := decode[shape.Style](msg)
		if err != nil {
			return err
		}
		ed.UpdateStyle(patch)
	case TypeSetLayer:
		p, err := decode[LayerPayload](msg)
		if err != nil {
			return err
		}
		return ed.SetLayer(p.LayerID)
	case TypeParams:
		p, err := decode[shape.Params](msg)
		if err != nil {
			return err
		}
		ed.SetParams(p)
	case TypeNodeKind:
		p, err := decode[NodeKindPayload](msg)
		if err != nil {
			return err
		}
		ed.SetNodeKind(p.Kind)
	case TypeText:
		p, err := decode[TextPayload](msg)
		if err != nil {
			return err
		}
		ed.SetText(p.Text)
	case TypeConvertText:
		var p ConvertTextPayload
		if len(msg.Payload) > 0 {
			var err error
			if p, err = decode[ConvertTextPayload](msg); err != nil {
				return err
			}
		}
		ed.ConvertTextToPath(s.ctx, p.ID)
	case TypeSelect:
		p, err := decode[SelectPayload](msg)
		if err != nil {
			return err
		}
		ed.Select(p.IDs)
	case TypeImport:
		p, err := decode[ImportPayload](msg)
		if err != nil {
			return err
		}
		n, err := ed.Import(p.Markup)
		if err != nil {
			// already reported through OnError
			return nil
		}
		s.logger.Debug("imported paths", "count", n)

	case TypeLayerAdd:
		p, err := decode[AddLayerPayload](msg)
		if err != nil {
			return err
		}
		if _, err := ed.AddLayer(p.Name, p.Color, p.Mode); err != nil {
			return err
		}
	case TypeLayerActivate:
		p, err := decode[LayerPayload](msg)
		if err != nil {
			return err
		}
		return ed.SetActiveLayer(p.LayerID)

	case TypeZoom:
		p, err := decode[ZoomPayload](msg)
		if err != nil {
			return err
		}
		ed.SetZoom(p.Zoom, geom.Pt(p.X, p.Y))
	case TypePan:
		p, err := decode[PanPayload](msg)
		if err != nil {
			return err
		}
		ed.PanBy(p.DX, p.DY)

	case TypeDocLoad:
		if len(msg.Payload) == 0 {
			return fmt.Errorf("%s: missing payload", msg.Type)
		}
		doc, err := document.Parse(msg.Payload)
		if err != nil {
			return err
		}
		return ed.LoadDocument(doc)
	case TypeDocGet:
		s.send(TypeDocSync, ed.Document())
	case TypeDocExport:
		var p ExportPayload
		if len(msg.Payload) > 0 {
			var err error
			if p, err = decode[ExportPayload](msg); err != nil {
				return err
			}
		}
		s.send(TypeDocMarkup, MarkupPayload{Markup: ed.ExportMarkup(p.Width, p.Height)})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}
