package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	name  string
	value *int
}

func (c counter) Execute()     { *c.value++ }
func (c counter) Undo()        { *c.value-- }
func (c counter) Name() string { return c.name }

func TestUndoRedo(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultCapacity, h.Capacity())

	v := 0
	for i := 0; i < 3; i++ {
		h.Execute(counter{fmt.Sprint(i), &v})
	}
	assert.Equal(t, 3, v)

	for i := 0; i < 3; i++ {
		require.True(t, h.Undo())
	}
	assert.Equal(t, 0, v)
	assert.False(t, h.Undo())

	for i := 0; i < 3; i++ {
		require.True(t, h.Redo())
	}
	assert.Equal(t, 3, v)
	assert.False(t, h.Redo())
}

func TestExecuteClearsRedo(t *testing.T) {
	h := New(10)
	v := 0
	h.Execute(counter{"a", &v})
	h.Execute(counter{"b", &v})
	h.Undo()
	assert.True(t, h.CanRedo())

	h.Execute(counter{"c", &v})
	assert.False(t, h.CanRedo())
	assert.Equal(t, "c", h.Peek().Name())
	undo, redo := h.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(2)
	v := 0
	for _, n := range []string{"a", "b", "c"} {
		h.Execute(counter{n, &v})
	}
	undo, _ := h.Len()
	assert.Equal(t, 2, undo)

	h.Undo()
	h.Undo()
	assert.False(t, h.CanUndo())
	assert.Equal(t, 1, v)
}

type slowCommand struct {
	counter
	prepErr   error
	commitErr error
	release   chan struct{}
}

func (s *slowCommand) Prepare(ctx context.Context) error {
	if s.release != nil {
		<-s.release
	}
	return s.prepErr
}

func (s *slowCommand) Commit() error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.Execute()
	return nil
}

// loop runs posted functions on the test goroutine.
type loop chan func()

func (l loop) post(fn func()) { l <- fn }

func (l loop) runOne(t *testing.T) {
	t.Helper()
	select {
	case fn := <-l:
		fn()
	case <-time.After(time.Second):
		t.Fatal("nothing posted")
	}
}

func TestExecuteAsyncPushesOnSuccess(t *testing.T) {
	h := New(5)
	v := 0
	cmd := &slowCommand{counter: counter{"convert", &v}, release: make(chan struct{})}
	l := make(loop, 1)

	f := h.ExecuteAsync(context.Background(), cmd, l.post)
	assert.False(t, h.CanUndo())
	assert.Equal(t, 0, v)

	var seen error = errors.New("unset")
	f.OnResolve(func(err error) { seen = err })

	close(cmd.release)
	l.runOne(t)

	require.NoError(t, f.Wait(context.Background()))
	assert.NoError(t, seen)
	assert.Equal(t, 1, v)
	assert.True(t, h.CanUndo())

	h.Undo()
	assert.Equal(t, 0, v)
}

func TestExecuteAsyncFailureIsNotPushed(t *testing.T) {
	boom := errors.New("font missing")
	for name, cmd := range map[string]*slowCommand{
		"prepare": {prepErr: boom},
		"commit":  {commitErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			h := New(5)
			v := 0
			cmd.counter = counter{"convert", &v}
			l := make(loop, 1)

			f := h.ExecuteAsync(context.Background(), cmd, l.post)
			l.runOne(t)

			assert.ErrorIs(t, f.Wait(context.Background()), boom)
			assert.False(t, h.CanUndo())
			assert.Equal(t, 0, v)
		})
	}
}

func TestExecuteAsyncCancelled(t *testing.T) {
	h := New(5)
	v := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := make(loop, 1)

	f := h.ExecuteAsync(ctx, &slowCommand{counter: counter{"convert", &v}}, l.post)
	l.runOne(t)
	assert.ErrorIs(t, f.Err(), context.Canceled)
	assert.False(t, h.CanUndo())
}

func TestResolvedFuture(t *testing.T) {
	f := Resolved(nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("not resolved")
	}
	called := false
	f.OnResolve(func(err error) { called = err == nil })
	assert.True(t, called)
}
