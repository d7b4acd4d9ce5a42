// Package history holds reversible commands on bounded undo and redo stacks.
package history

// DefaultCapacity is the number of undo entries kept when none is configured.
const DefaultCapacity = 50

// Command is a reversible edit. Execute and Undo may be called alternately any
// number of times.
type Command interface {
	Execute()
	Undo()
	// Name is a short label for logs and menus.
	Name() string
}

// History is a pair of bounded stacks. The oldest undo entry is evicted when
// capacity is exceeded. It is not safe for concurrent use.
type History struct {
	capacity int
	undo     []Command
	redo     []Command
}

// New returns an empty history. A capacity below one uses DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Execute runs cmd and records it.
func (h *History) Execute(cmd Command) {
	cmd.Execute()
	h.Push(cmd)
}

// Push records an already executed command and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.undo = append(h.undo, cmd)
	if over := len(h.undo) - h.capacity; over > 0 {
		clear(h.undo[:over])
		h.undo = h.undo[over:]
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo reverts the newest command. It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	cmd := h.undo[n-1]
	h.undo[n-1] = nil
	h.undo = h.undo[:n-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	return true
}

// Redo re-executes the newest undone command. It reports false when there is
// nothing to redo.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	cmd := h.redo[n-1]
	h.redo[n-1] = nil
	h.redo = h.redo[:n-1]
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	return true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the undo and redo stack depths.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Capacity returns the maximum undo depth.
func (h *History) Capacity() int { return h.capacity }

// Peek returns the command Undo would revert, or nil.
func (h *History) Peek() Command {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
