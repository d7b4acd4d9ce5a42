//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/session"
	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

// jsSender forwards editor messages to the page's listener as JSON strings.
type jsSender struct {
	listener js.Value
}

func (s *jsSender) Send(msg *session.Message) {
	if s.listener.IsUndefined() || s.listener.IsNull() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.listener.Invoke(string(data))
}

var (
	out     = &jsSender{listener: js.Undefined()}
	inbound = make(chan *session.Message, 64)
)

func main() {
	sess := session.New(context.Background(), typeid.NewSessionID(), "wasm", out, config.DefaultEditor(),
		document.NewSampleDocument("Untitled"))

	api := js.Global().Get("Object").New()

	// --- Host → editor ---
	api.Set("send", js.FuncOf(send))
	api.Set("onMessage", js.FuncOf(onMessage))

	// --- Queries ---
	api.Set("sampleDocument", js.FuncOf(sampleDocument))

	js.Global().Set("laserEditor", api)
	js.Global().Set("laserWasmReady", js.ValueOf(true))

	// The session loop owns the editor; callbacks only enqueue.
	sess.Run(context.Background(), inbound)
}

func send(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing message JSON"})
	}

	var msg session.Message
	if err := json.Unmarshal([]byte(args[0].String()), &msg); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	select {
	case inbound <- &msg:
		return js.ValueOf(map[string]interface{}{"ok": true})
	default:
		return js.ValueOf(map[string]interface{}{"error": "editor busy"})
	}
}

func onMessage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		out.listener = js.Undefined()
		return nil
	}
	out.listener = args[0]
	return nil
}

func sampleDocument(this js.Value, args []js.Value) interface{} {
	name := "Sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	data, err := json.Marshal(document.NewSampleDocument(name))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(data))
}
