package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/editor"
)

var (
	ErrSessionAttached = errors.New("session: already attached")
	ErrHubStopped      = errors.New("session: hub stopped")
)

// inboundBuffer is how many host messages may queue ahead of the editor.
const inboundBuffer = 64

type attachment struct {
	client *Client
	cancel context.CancelFunc
}

// Hub tracks the attached sessions. A session id can be attached by one
// connection at a time.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*attachment
	stopped  bool

	cfg    config.Editor
	newDoc func() *document.Document
	opts   []editor.Option
}

// NewHub creates a hub. newDoc supplies the starting document of each new
// session; nil starts on an empty page. opts are passed to every editor.
func NewHub(cfg config.Editor, newDoc func() *document.Document, opts ...editor.Option) *Hub {
	return &Hub{
		sessions: make(map[string]*attachment),
		cfg:      cfg,
		newDoc:   newDoc,
		opts:     opts,
	}
}

func (h *Hub) register(a *attachment) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrHubStopped
	}
	if _, ok := h.sessions[a.client.SessionID]; ok {
		return ErrSessionAttached
	}
	h.sessions[a.client.SessionID] = a
	return nil
}

func (h *Hub) unregister(a *attachment) {
	h.mu.Lock()
	if cur, ok := h.sessions[a.client.SessionID]; ok && cur == a {
		delete(h.sessions, a.client.SessionID)
	}
	h.mu.Unlock()
}

// Count returns the number of attached sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Serve runs a session on conn until the host disconnects, ctx is done or the
// hub stops. It closes conn before returning.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, sessionID string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clientID := uuid.New().String()
	client := NewClient(conn, sessionID, clientID)
	a := &attachment{client: client, cancel: cancel}
	if err := h.register(a); err != nil {
		slog.Warn("session rejected", "session", sessionID, "error", err)
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	defer h.unregister(a)

	var doc *document.Document
	if h.newDoc != nil {
		doc = h.newDoc()
	}
	sess := New(ctx, sessionID, clientID, client, h.cfg, doc, h.opts...)

	slog.Info("session attached", "session", sessionID, "client", clientID)
	inbound := make(chan *Message, inboundBuffer)
	go client.WritePump(ctx)
	go client.ReadPump(ctx, inbound)
	sess.Run(ctx, inbound)
	slog.Info("session detached", "session", sessionID, "client", clientID)
}

// Stop detaches every session and refuses new ones.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.stopped = true
	all := make([]*attachment, 0, len(h.sessions))
	for _, a := range h.sessions {
		all = append(all, a)
	}
	h.mu.Unlock()

	for _, a := range all {
		a.cancel()
	}
}
