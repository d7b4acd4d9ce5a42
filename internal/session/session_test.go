package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/render"
	"github.com/eballetbo/LaserReady-sub000/internal/tool"
)

type outbox struct {
	mu   sync.Mutex
	msgs []*Message
}

func (o *outbox) Send(msg *Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) ofType(typ string) []*Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []*Message
	for _, m := range o.msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func msg(t *testing.T, typ string, payload any) *Message {
	t.Helper()
	m := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		m.Payload = data
	}
	return m
}

func newSession(t *testing.T) (*Session, *outbox) {
	t.Helper()
	out := &outbox{}
	s := New(context.Background(), "session_test", "client_test", out, config.DefaultEditor(), nil)
	t.Cleanup(s.Editor().Close)
	return s, out
}

func TestHandleDrawsAndEdits(t *testing.T) {
	s, out := newSession(t)

	require.NoError(t, s.Handle(msg(t, TypeToolSet, ToolPayload{Tool: tool.RectTool})))
	require.NoError(t, s.Handle(msg(t, TypePointerDown, tool.PointerEvent{X: 10, Y: 10, Clicks: 1})))
	require.NoError(t, s.Handle(msg(t, TypePointerMove, tool.PointerEvent{X: 60, Y: 40})))
	require.NoError(t, s.Handle(msg(t, TypePointerUp, tool.PointerEvent{X: 60, Y: 40})))
	require.Len(t, s.Editor().Store().Shapes(), 1)

	scenes := out.ofType(TypeScene)
	require.NotEmpty(t, scenes)
	var sc ScenePayload
	require.NoError(t, json.Unmarshal(scenes[len(scenes)-1].Payload, &sc))
	assert.True(t, sc.CanUndo)
	assert.Equal(t, tool.RectTool, sc.Tool)
	assert.Len(t, sc.Selection, 1)
	var paths int
	for _, c := range sc.Commands {
		if c.Op == render.OpPath {
			paths++
		}
	}
	assert.Equal(t, 1, paths)

	require.NoError(t, s.Handle(msg(t, TypeUndo, nil)))
	assert.Empty(t, s.Editor().Store().Shapes())
	require.NoError(t, s.Handle(msg(t, TypeRedo, nil)))
	require.NoError(t, s.Handle(msg(t, TypeDelete, nil)))
	assert.Empty(t, s.Editor().Store().Shapes())
}

func TestHandleImportBooleanAndExport(t *testing.T) {
	s, out := newSession(t)

	src := `<svg><rect width="100" height="100"/><rect x="50" width="100" height="100"/></svg>`
	require.NoError(t, s.Handle(msg(t, TypeImport, ImportPayload{Markup: src})))
	require.Len(t, s.Editor().Store().Selection(), 2)

	require.NoError(t, s.Handle(msg(t, TypeBoolean, BooleanPayload{Op: "unite"})))
	assert.Len(t, s.Editor().Store().Shapes(), 1)
	assert.Error(t, s.Handle(msg(t, TypeBoolean, BooleanPayload{Op: "melt"})))

	require.NoError(t, s.Handle(msg(t, TypeDocExport, nil)))
	exports := out.ofType(TypeDocMarkup)
	require.Len(t, exports, 1)
	var mp MarkupPayload
	require.NoError(t, json.Unmarshal(exports[0].Payload, &mp))
	assert.True(t, strings.HasPrefix(mp.Markup, "<svg"))

	require.NoError(t, s.Handle(msg(t, TypeImport, ImportPayload{Markup: "plain text"})))
	errs := out.ofType(TypeError)
	require.Len(t, errs, 1)
}

func TestHandleDocumentAndView(t *testing.T) {
	s, out := newSession(t)

	doc := document.NewSampleDocument("sample")
	require.NoError(t, s.Handle(msg(t, TypeDocLoad, doc)))
	assert.Len(t, s.Editor().Store().Shapes(), len(doc.Shapes))

	require.NoError(t, s.Handle(msg(t, TypeDocGet, nil)))
	syncs := out.ofType(TypeDocSync)
	require.Len(t, syncs, 1)
	back, err := document.Parse(syncs[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, back.ID)

	bad := document.NewSampleDocument("bad")
	bad.Height = -1
	assert.ErrorIs(t, s.Handle(msg(t, TypeDocLoad, bad)), document.ErrInvalidDocument)

	require.NoError(t, s.Handle(msg(t, TypeZoom, ZoomPayload{Zoom: 2})))
	require.NoError(t, s.Handle(msg(t, TypePan, PanPayload{DX: 5, DY: 7})))
	assert.Equal(t, 2.0, s.Editor().Zoom())
	assert.Equal(t, 5.0, s.Editor().Pan().X)

	require.NoError(t, s.Handle(msg(t, TypeLayerAdd, AddLayerPayload{Name: "Mark", Color: "#00ff00", Mode: "SCORE"})))
	layers := s.Editor().Layers()
	require.NoError(t, s.Handle(msg(t, TypeLayerActivate, LayerPayload{LayerID: layers[len(layers)-1].ID})))
	assert.Error(t, s.Handle(msg(t, TypeLayerActivate, LayerPayload{LayerID: "layer_none"})))
}

func TestHandleRejectsBadMessages(t *testing.T) {
	s, _ := newSession(t)
	assert.ErrorIs(t, s.Handle(&Message{Type: "dance"}), ErrUnknownMessage)
	assert.Error(t, s.Handle(&Message{Type: TypePointerDown}))
	assert.Error(t, s.Handle(&Message{Type: TypeKeyDown, Payload: json.RawMessage(`{"key":1}`)}))
	assert.Error(t, s.Handle(msg(t, TypeToolSet, ToolPayload{Tool: "lasso"})))
}

func readMessage(t *testing.T, ctx context.Context, c *websocket.Conn, typ string) *Message {
	t.Helper()
	for {
		_, data, err := c.Read(ctx)
		require.NoError(t, err)
		var m Message
		require.NoError(t, json.Unmarshal(data, &m))
		if m.Type == typ {
			return &m
		}
	}
}

func TestHubServesWebsocketSessions(t *testing.T) {
	hub := NewHub(config.DefaultEditor(), func() *document.Document { return document.NewSampleDocument("s") })
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(r.Context(), conn, r.URL.Query().Get("session"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=session_a"

	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	welcome := readMessage(t, ctx, c, TypeWelcome)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(welcome.Payload, &wp))
	assert.Equal(t, "session_a", wp.SessionID)
	assert.NotEmpty(t, wp.ClientID)
	assert.Len(t, wp.Tools, len(tool.Names))
	readMessage(t, ctx, c, TypeScene)
	assert.Equal(t, 1, hub.Count())

	// a second connection to the same session is refused
	dup, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	_, _, err = dup.Read(ctx)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))

	data, err := json.Marshal(msg(t, TypeDocGet, nil))
	require.NoError(t, err)
	require.NoError(t, c.Write(ctx, websocket.MessageText, data))
	sync := readMessage(t, ctx, c, TypeDocSync)
	doc, err := document.Parse(sync.Payload)
	require.NoError(t, err)
	assert.Equal(t, "s", doc.Name)

	hub.Stop()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}
