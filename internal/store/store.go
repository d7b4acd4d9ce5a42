// Package store is the observable container for the shape list and the selection.
package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// ErrShapeNotFound is returned when an id does not name a top-level shape.
var ErrShapeNotFound = errors.New("store: shape not found")

// Store is the authoritative holder of editor state. Readers re-read rather
// than cache; writers replace the whole list or selection.
type Store interface {
	Shapes() []shape.Shape
	SetShapes(shapes []shape.Shape)
	// Selection returns the selected shape ids.
	Selection() []string
	SetSelection(ids []string)
	// Subscribe registers fn to run after every change and returns a function
	// that removes it.
	Subscribe(fn func()) (cancel func())
}

// Memory is an in-process Store.
type Memory struct {
	mu        sync.RWMutex
	shapes    []shape.Shape
	selection []string
	subs      map[int]func()
	nextSub   int
}

var _ Store = (*Memory)(nil)

// NewMemory creates a store holding shapes and an empty selection.
func NewMemory(shapes ...shape.Shape) *Memory {
	return &Memory{shapes: shapes, subs: make(map[int]func())}
}

// Shapes returns a copy of the top-level list. The shapes themselves are shared.
func (m *Memory) Shapes() []shape.Shape {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.shapes)
}

func (m *Memory) SetShapes(shapes []shape.Shape) {
	m.mu.Lock()
	m.shapes = slices.Clone(shapes)
	m.mu.Unlock()
	m.notify()
}

func (m *Memory) Selection() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.selection)
}

func (m *Memory) SetSelection(ids []string) {
	m.mu.Lock()
	m.selection = slices.Clone(ids)
	m.mu.Unlock()
	m.notify()
}

func (m *Memory) Subscribe(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// notify runs subscribers outside the lock so they may read the store.
func (m *Memory) notify() {
	m.mu.RLock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = m.subs[id]
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
