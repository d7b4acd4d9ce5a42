package history

import (
	"context"
	"sync"
)

// AsyncCommand is a command whose first execution depends on slow external
// work. Prepare runs on its own goroutine and must not touch editor state;
// Commit runs afterwards on the editor's goroutine and performs the edit.
// Later redos go through Execute.
type AsyncCommand interface {
	Command
	Prepare(ctx context.Context) error
	Commit() error
}

// Future is the pending outcome of an asynchronous command.
type Future struct {
	done      chan struct{}
	mu        sync.Mutex
	err       error
	resolved  bool
	callbacks []func(error)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future that has already completed with err.
func Resolved(err error) *Future {
	f := newFuture()
	f.resolve(err)
	return f
}

// Done is closed once the future resolves.
func (f *Future) Done() <-chan struct{} { return f.done }

// Err returns the outcome. It is nil until the future resolves.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnResolve registers fn to run with the outcome. If the future already
// resolved, fn runs immediately.
func (f *Future) OnResolve(fn func(error)) {
	f.mu.Lock()
	if f.resolved {
		err := f.err
		f.mu.Unlock()
		fn(err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

func (f *Future) resolve(err error) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return
	}
	f.resolved = true
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range cbs {
		fn(err)
	}
}

// ExecuteAsync starts cmd. Prepare runs in a new goroutine; its completion is
// handed to post, which must run the given function on the goroutine that owns
// the history. The command is committed and pushed there, and only if both
// Prepare and Commit succeed. The returned future resolves after that.
func (h *History) ExecuteAsync(ctx context.Context, cmd AsyncCommand, post func(func())) *Future {
	f := newFuture()
	go func() {
		err := cmd.Prepare(ctx)
		post(func() {
			if err == nil {
				err = ctx.Err()
			}
			if err == nil {
				err = cmd.Commit()
			}
			if err == nil {
				h.Push(cmd)
			}
			f.resolve(err)
		})
	}()
	return f
}
