package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// OutlineLoader turns a text into glyph outline paths in canvas coordinates.
type OutlineLoader interface {
	LoadOutline(ctx context.Context, t *shape.Text) ([]*shape.Path, error)
}

// ConvertTextToPath swaps a top-level text for its outlines: a single path for
// one contour, a group otherwise. The swap happens in Commit, after Prepare
// has loaded the outlines.
type ConvertTextToPath struct {
	st          store.Store
	loader      OutlineLoader
	text        *shape.Text
	replacement shape.Shape
}

// NewConvertTextToPath captures the text to convert. It fails with ErrNotText
// when id names another kind of shape.
func NewConvertTextToPath(st store.Store, loader OutlineLoader, id string) (*ConvertTextToPath, error) {
	sh := store.Find(st, id)
	if sh == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrShapeNotFound, id)
	}
	t, ok := sh.(*shape.Text)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotText, id)
	}
	return &ConvertTextToPath{st: st, loader: loader, text: t.Clone().(*shape.Text)}, nil
}

func (c *ConvertTextToPath) Name() string { return "Convert Text to Path" }

// Replacement returns the shape that took the text's place, once prepared.
func (c *ConvertTextToPath) Replacement() shape.Shape { return c.replacement }

// Prepare loads the outlines. It only reads the captured copy of the text.
func (c *ConvertTextToPath) Prepare(ctx context.Context) error {
	paths, err := c.loader.LoadOutline(ctx, c.text)
	if err != nil {
		return fmt.Errorf("convert text %s: %w", c.text.ID, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("convert text %s: no outlines", c.text.ID)
	}
	for _, p := range paths {
		p.LayerID = c.text.LayerID
	}
	if len(paths) == 1 {
		c.replacement = paths[0]
		return nil
	}
	children := make([]shape.Shape, len(paths))
	for i, p := range paths {
		children[i] = p
	}
	c.replacement = shape.NewGroup(children...)
	return nil
}

// Commit performs the swap. The text must still be a top-level shape in the
// state Prepare loaded outlines for.
func (c *ConvertTextToPath) Commit() error {
	if c.replacement == nil {
		return fmt.Errorf("convert text %s: not prepared", c.text.ID)
	}
	i := store.IndexOf(c.st, c.text.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrShapeNotFound, c.text.ID)
	}
	live, ok := c.st.Shapes()[i].(*shape.Text)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotText, c.text.ID)
	}
	if *live != *c.text {
		return fmt.Errorf("%w: %s", ErrTextChanged, c.text.ID)
	}
	c.text = live
	c.swap(c.text.ID, c.replacement)
	return nil
}

func (c *ConvertTextToPath) Execute() {
	if c.replacement == nil {
		return
	}
	c.swap(c.text.ID, c.replacement)
}

func (c *ConvertTextToPath) Undo() {
	if c.replacement == nil {
		return
	}
	c.swap(c.replacement.ShapeID(), c.text)
}

func (c *ConvertTextToPath) swap(from string, to shape.Shape) {
	if err := store.Replace(c.st, from, to); err != nil {
		return
	}
	sel := c.st.Selection()
	if i := slices.Index(sel, from); i >= 0 {
		sel[i] = to.ShapeID()
		c.st.SetSelection(sel)
	}
}

// EditText records a change of a text's content or font made while editing.
// Build it after the edit, passing the state captured before.
type EditText struct {
	st     store.Store
	before *shape.Text
	after  *shape.Text
}

func NewEditText(st store.Store, live, before *shape.Text) *EditText {
	return &EditText{
		st:     st,
		before: before.Clone().(*shape.Text),
		after:  live.Clone().(*shape.Text),
	}
}

func (c *EditText) Name() string { return "Edit Text" }

func (c *EditText) Execute() { c.apply(c.after) }
func (c *EditText) Undo()    { c.apply(c.before) }

func (c *EditText) apply(src *shape.Text) {
	if t, ok := store.Find(c.st, src.ID).(*shape.Text); ok {
		t.RestoreFrom(src)
		store.Touch(c.st)
	}
}
