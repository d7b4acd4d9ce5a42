package editor

import (
	"log/slog"

	"github.com/eballetbo/LaserReady-sub000/internal/boolean"
	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/config"
	"github.com/eballetbo/LaserReady-sub000/internal/document"
	"github.com/eballetbo/LaserReady-sub000/internal/glyph"
	"github.com/eballetbo/LaserReady-sub000/internal/render"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// Option configures an Editor during creation.
//
// Example:
//
//	ed := editor.New(
//		editor.WithRenderer(r),
//		editor.OnError(func(err error) { ui.Toast(err.Error()) }),
//	)
type Option func(*options)

type options struct {
	store    store.Store
	renderer render.Renderer
	config   config.Editor
	backend  boolean.Backend
	loader   command.OutlineLoader
	logger   *slog.Logger
	onError  func(error)
	document *document.Document
}

func defaultOptions() options {
	return options{
		config: config.DefaultEditor(),
	}
}

// WithStore sets the state container. The default is an empty in-memory store.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithRenderer sets where scenes are drawn. The default discards them.
func WithRenderer(r render.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithConfig sets the interaction tuning.
func WithConfig(cfg config.Editor) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithBackend sets the boolean clipping backend. The default is the canvas backend.
func WithBackend(b boolean.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLoader sets the glyph outline source used by ConvertTextToPath. The
// default loads from the built-in fonts.
func WithLoader(l command.OutlineLoader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLogger overrides the package logger for one editor.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// OnError registers the callback that receives recoverable errors: rejected
// imports, failed boolean operations, failed font loads.
func OnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithDocument starts the editor on doc instead of an empty page. An invalid
// document is reported and ignored.
func WithDocument(doc *document.Document) Option {
	return func(o *options) {
		o.document = doc
	}
}

func (o *options) fill() {
	if o.store == nil {
		o.store = store.NewMemory()
	}
	if o.renderer == nil {
		o.renderer = render.Nop
	}
	if o.backend == nil {
		o.backend = boolean.NewCanvasBackend()
	}
	if o.loader == nil {
		o.loader = glyph.NewLoader(glyph.Default())
	}
	if o.logger == nil {
		o.logger = Logger()
	}
}
