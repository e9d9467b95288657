package state

import (
	"log"
	"sync"
)

// Frame is what a renderer paints: the committed shapes in z-order followed
// by the active shape, if any. A frame is detached from the board and may be
// kept after RenderFrame returns.
type Frame struct {
	Revision  uint64
	Committed []Shape
	Active    Shape
}

// Renderer receives a frame after every event that changed the board.
// RenderFrame is called with the board locked and must not call back into it.
type Renderer interface {
	RenderFrame(f Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame)

func (fn RendererFunc) RenderFrame(f Frame) { fn(f) }

// Board is a drawing surface: the committed shapes, the shape being drawn and
// the shapes that were undone. Events are applied one at a time; invalid
// sequences degrade to no-ops.
type Board struct {
	mu        sync.Mutex
	committed []Shape
	active    Shape
	redo      []Shape
	tool      Tool
	settings  *Settings
	clock     Clock
	renderer  Renderer
}

// NewBoard returns an empty board with tool selected. A nil settings store
// gets the defaults.
func NewBoard(tool Tool, settings *Settings) *Board {
	if settings == nil {
		settings = NewSettings(DefaultSnapshot())
	}
	return &Board{tool: tool, settings: settings}
}

func (b *Board) SetRenderer(r Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderer = r
}

func (b *Board) Settings() *Settings { return b.settings }

func (b *Board) Tool() Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tool
}

// Frame returns the current state as a detached frame.
func (b *Board) Frame() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameLocked(b.clock.Now())
}

// Committed returns the committed shapes, oldest first.
func (b *Board) Committed() []Shape {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Shape(nil), b.committed...)
}

// Active returns a copy of the shape being drawn, or nil when idle.
func (b *Board) Active() Shape {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return nil
	}
	return b.active.Clone()
}

// Undone returns the redo stack, most recently undone last.
func (b *Board) Undone() []Shape {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Shape(nil), b.redo...)
}

// StartShape begins a new shape. An active text shape is committed first; any
// other active shape is dropped. Unknown tools leave the board untouched.
func (b *Board) StartShape(tool Tool, p Point, settings Snapshot) {
	b.update(func() bool { return b.startLocked(tool, p, settings) })
}

// PointerDown starts a shape with the selected tool and the current settings.
func (b *Board) PointerDown(p Point) {
	b.update(func() bool {
		return b.startLocked(b.tool, p, b.settings.For(b.tool))
	})
}

// ResizeActive feeds in to the active shape.
func (b *Board) ResizeActive(in Input) {
	b.update(func() bool {
		if b.active == nil {
			return false
		}
		b.active.Resize(in)
		return true
	})
}

// PointerMove resizes the active geometric shape. Text ignores the pointer.
func (b *Board) PointerMove(p Point) {
	b.update(func() bool {
		if b.active == nil || isText(b.active) {
			return false
		}
		b.active.Resize(PointInput(p))
		return true
	})
}

// PointerUp commits the active geometric shape. Text stays active until
// Enter or a tool change.
func (b *Board) PointerUp() {
	b.update(func() bool {
		if b.active == nil || isText(b.active) {
			return false
		}
		b.commitLocked()
		return true
	})
}

// PointerCancel drops an unfinished geometric shape, as when the gesture is
// aborted before the pointer is released.
func (b *Board) PointerCancel() {
	b.update(func() bool {
		if b.active == nil || isText(b.active) {
			return false
		}
		b.active = nil
		return true
	})
}

// KeyToken routes a key to the active text shape: Enter commits it, anything
// else edits it. Keys arriving with no active text are ignored.
func (b *Board) KeyToken(token string) {
	b.update(func() bool {
		if b.active == nil || !isText(b.active) {
			return false
		}
		if token == KeyEnter {
			b.commitLocked()
			return true
		}
		before := b.active.(*Text).Content
		b.active.Resize(KeyInput(token))
		return b.active.(*Text).Content != before
	})
}

// CommitActive moves the active shape onto the committed list.
func (b *Board) CommitActive() {
	b.update(func() bool {
		if b.active == nil {
			return false
		}
		b.commitLocked()
		return true
	})
}

// Undo moves the newest committed shape onto the redo stack.
func (b *Board) Undo() {
	b.update(func() bool {
		n := len(b.committed)
		if n == 0 {
			return false
		}
		s := b.committed[n-1]
		b.committed[n-1] = nil
		b.committed = b.committed[:n-1]
		b.redo = append(b.redo, s)
		log.Printf("[BOARD] Undo %s, %d shapes left", s.Attrs().ID, len(b.committed))
		return true
	})
}

// Redo restores the most recently undone shape.
func (b *Board) Redo() {
	b.update(func() bool {
		n := len(b.redo)
		if n == 0 {
			return false
		}
		s := b.redo[n-1]
		b.redo[n-1] = nil
		b.redo = b.redo[:n-1]
		b.committed = append(b.committed, s)
		log.Printf("[BOARD] Redo %s, %d shapes", s.Attrs().ID, len(b.committed))
		return true
	})
}

// ClearAll empties the board, including the history.
func (b *Board) ClearAll() {
	b.update(func() bool {
		b.active = nil
		b.committed = nil
		b.redo = nil
		log.Println("[BOARD] Cleared")
		return true
	})
}

// ToolChanged selects tool. Text being typed is committed; a geometric shape
// in progress is dropped when the tool actually changes.
func (b *Board) ToolChanged(tool Tool) {
	if _, err := ParseTool(string(tool)); err != nil {
		log.Printf("[BOARD] Ignoring tool change: %v", err)
		return
	}
	b.update(func() bool {
		changed := false
		if b.active != nil {
			switch {
			case isText(b.active):
				b.commitLocked()
				changed = true
			case tool != b.tool:
				b.active = nil
				changed = true
			}
		}
		b.tool = tool
		return changed
	})
}

// SettingsChanged updates the style used by shapes started from now on.
func (b *Board) SettingsChanged(p Partial) error {
	return b.settings.Apply(p)
}

func (b *Board) startLocked(tool Tool, p Point, settings Snapshot) bool {
	shape, err := NewShape(tool, p, settings)
	if err != nil {
		log.Printf("[BOARD] Not starting shape: %v", err)
		return false
	}
	if b.active != nil && isText(b.active) {
		b.commitLocked()
	}
	b.active = shape
	b.redo = nil
	return true
}

func (b *Board) commitLocked() {
	s := b.active
	s.Attrs().freeze()
	b.committed = append(b.committed, s)
	b.active = nil
	b.redo = nil
	log.Printf("[BOARD] Committed %s %s", ToolOf(s), s.Attrs().ID)
}

// update runs fn with the board locked and, when fn reports a change, hands
// the new frame to the renderer before unlocking.
func (b *Board) update(fn func() bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !fn() {
		return
	}
	rev := b.clock.Tick()
	if b.renderer != nil {
		b.renderer.RenderFrame(b.frameLocked(rev))
	}
}

func (b *Board) frameLocked(rev uint64) Frame {
	f := Frame{
		Revision:  rev,
		Committed: append([]Shape(nil), b.committed...),
	}
	if b.active != nil {
		f.Active = b.active.Clone()
	}
	return f
}

func isText(s Shape) bool {
	_, ok := s.(*Text)
	return ok
}
