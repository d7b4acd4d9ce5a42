package tool

import (
	"unicode/utf8"

	"github.com/eballetbo/LaserReady-sub000/internal/command"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// Text creates and edits text shapes. Typing changes the text live; the edit
// is recorded when editing ends.
type Text struct {
	env     *Env
	editing *shape.Text
	// before is the state when editing began, nil for a text created by this session.
	before *shape.Text
}

func NewText(env *Env) *Text {
	return &Text{env: env}
}

func (t *Text) Name() Name { return TextTool }

func (t *Text) OnActivate() {}

func (t *Text) OnDeactivate() {
	t.commit()
}

func (t *Text) Preview() Preview {
	p := Preview{Tool: TextTool, SelectedNode: -1}
	if t.editing != nil {
		p.EditingTextID = t.editing.ID
	}
	return p
}

// EditingID returns the id of the text under edit, or "".
func (t *Text) EditingID() string {
	if t.editing == nil {
		return ""
	}
	return t.editing.ID
}

func (t *Text) OnPointerDown(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	t.commit()

	p := ev.Point()
	hit := shape.HitTop(t.env.Store.Shapes(), p.X, p.Y, t.env.px(t.env.Config.HitTolerance))
	if txt, ok := hit.(*shape.Text); ok {
		t.editing = txt
		t.before = txt.Clone().(*shape.Text)
		t.env.Store.SetSelection([]string{txt.ID})
		return
	}

	txt := shape.NewText(t.env.layer(), p.X, p.Y, t.env.Config.FontFamily, t.env.Config.FontSize)
	store.Append(t.env.Store, txt)
	t.editing = txt
	t.before = nil
}

func (t *Text) OnPointerMove(PointerEvent) {}
func (t *Text) OnPointerUp(PointerEvent)   {}

func (t *Text) OnKeyDown(ev KeyEvent) bool {
	if t.editing == nil {
		return false
	}
	if ev.Cmd() {
		return false
	}
	s := t.editing.Text
	switch {
	case ev.Key == "Escape":
		t.commit()
		return true
	case ev.Key == "Enter":
		s += "\n"
	case ev.Key == "Backspace":
		if s == "" {
			return true
		}
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	case utf8.RuneCountInString(ev.Key) == 1:
		s += ev.Key
	default:
		return false
	}
	t.SetText(s)
	return true
}

// SetText replaces the content of the text under edit. It reports false when
// nothing is being edited.
func (t *Text) SetText(s string) bool {
	if t.editing == nil {
		return false
	}
	t.editing.Text = s
	store.Touch(t.env.Store)
	return true
}

// commit ends editing. A new text that is still empty is dropped without a
// history entry.
func (t *Text) commit() {
	txt, before := t.editing, t.before
	t.editing, t.before = nil, nil
	if txt == nil {
		return
	}
	if before == nil {
		if txt.Text == "" {
			_, _ = store.Remove(t.env.Store, txt.ID)
			return
		}
		t.env.execute(command.NewCreateShape(t.env.Store, txt, true))
		return
	}
	if *txt != *before {
		t.env.execute(command.NewEditText(t.env.Store, txt, before))
		return
	}
	t.env.refresh()
}
