package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) RenderFrame(f Frame) { r.frames = append(r.frames, f) }

func (r *frameRecorder) last(t *testing.T) Frame {
	t.Helper()
	require.NotEmpty(t, r.frames, "no frame rendered")
	return r.frames[len(r.frames)-1]
}

func newTestBoard(tool Tool) (*Board, *frameRecorder) {
	b := NewBoard(tool, nil)
	rec := &frameRecorder{}
	b.SetRenderer(rec)
	return b, rec
}

// drawRect commits one rectangle via the pointer events.
func drawRect(b *Board, from, to Point) {
	b.ToolChanged(ToolRectangle)
	b.PointerDown(from)
	b.PointerMove(to)
	b.PointerUp()
}

type boardState struct {
	committed []Shape
	active    Shape
	redo      []Shape
}

func snapshotOf(b *Board) boardState {
	return boardState{committed: b.Committed(), active: b.Active(), redo: b.Undone()}
}

func TestUndoRedoOnEmptyAreNoOps(t *testing.T) {
	b, rec := newTestBoard(ToolRectangle)
	before := snapshotOf(b)

	b.Undo()
	b.Redo()

	assert.Equal(t, before, snapshotOf(b))
	assert.Empty(t, rec.frames)

	drawRect(b, Point{0, 0}, Point{5, 5})
	before = snapshotOf(b)
	frames := len(rec.frames)
	b.Redo()
	assert.Equal(t, before, snapshotOf(b))
	assert.Len(t, rec.frames, frames)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		b, _ := newTestBoard(ToolRectangle)
		for i := 0; i < n; i++ {
			drawRect(b, Point{float64(i), 0}, Point{float64(i) + 10, 10})
		}
		original := b.Committed()
		require.Len(t, original, n)

		for i := 0; i < n; i++ {
			b.Undo()
		}
		assert.Empty(t, b.Committed())
		assert.Len(t, b.Undone(), n)

		for i := 0; i < n; i++ {
			b.Redo()
		}
		assert.Equal(t, original, b.Committed(), "n=%d", n)
		assert.Empty(t, b.Undone(), "n=%d", n)
	}
}

func TestCommitAfterUndoDiscardsRedo(t *testing.T) {
	b, _ := newTestBoard(ToolRectangle)
	drawRect(b, Point{0, 0}, Point{1, 1})
	drawRect(b, Point{2, 2}, Point{3, 3})
	b.Undo()
	b.Undo()
	require.Len(t, b.Undone(), 2)

	drawRect(b, Point{4, 4}, Point{5, 5})
	assert.Empty(t, b.Undone())

	b.Redo()
	assert.Len(t, b.Committed(), 1)

	b.Undo()
	b.Redo()
	assert.Len(t, b.Committed(), 1)
}

func TestStartShapeClearsRedo(t *testing.T) {
	b, _ := newTestBoard(ToolLine)
	b.PointerDown(Point{0, 0})
	b.PointerUp()
	b.Undo()
	require.Len(t, b.Undone(), 1)

	b.PointerDown(Point{1, 1})
	assert.Empty(t, b.Undone())
}

func TestRectangleGeometry(t *testing.T) {
	b, rec := newTestBoard(ToolRectangle)
	b.StartShape(ToolRectangle, Point{10, 10}, DefaultSnapshot())
	b.ResizeActive(PointInput(Point{40, 25}))

	r, ok := b.Active().(*Rectangle)
	require.True(t, ok)
	assert.Equal(t, Point{10, 10}, r.Origin)
	assert.Equal(t, 30.0, r.Width)
	assert.Equal(t, 15.0, r.Height)

	b.ResizeActive(PointInput(Point{5, 2}))
	r = b.Active().(*Rectangle)
	assert.Equal(t, -5.0, r.Width)
	assert.Equal(t, -8.0, r.Height)

	assert.Equal(t, r.Width, rec.last(t).Active.(*Rectangle).Width)
}

func TestCircleRadius(t *testing.T) {
	b, _ := newTestBoard(ToolCircle)
	b.StartShape(ToolCircle, Point{0, 0}, DefaultSnapshot())
	b.ResizeActive(PointInput(Point{3, 4}))

	c, ok := b.Active().(*Circle)
	require.True(t, ok)
	assert.Equal(t, 5.0, c.Radius)
}

func TestTextFlow(t *testing.T) {
	b, _ := newTestBoard(ToolText)
	b.StartShape(ToolText, Point{20, 40}, DefaultSnapshot())
	b.KeyToken("H")
	b.KeyToken("i")
	b.KeyToken(KeyEnter)

	committed := b.Committed()
	require.Len(t, committed, 1)
	txt, ok := committed[0].(*Text)
	require.True(t, ok)
	assert.Equal(t, "Hi", txt.Content)
	assert.Nil(t, b.Active())
}

func TestTextBackspaceAndIgnoredKeys(t *testing.T) {
	b, _ := newTestBoard(ToolText)
	b.PointerDown(Point{0, 0})
	b.KeyToken(KeyBackspace)
	b.KeyToken("a")
	b.KeyToken("Shift")
	b.KeyToken("é")
	b.KeyToken(KeyBackspace)
	b.KeyToken("b")

	assert.Equal(t, "ab", b.Active().(*Text).Content)
}

func TestPointerEventsDoNotTouchText(t *testing.T) {
	b, _ := newTestBoard(ToolText)
	b.PointerDown(Point{0, 0})
	b.KeyToken("x")
	b.PointerMove(Point{50, 50})
	b.PointerUp()

	assert.Empty(t, b.Committed())
	require.NotNil(t, b.Active())
	assert.Equal(t, Point{0, 0}, b.Active().Attrs().Origin)
}

func TestStartShapeCommitsActiveText(t *testing.T) {
	b, _ := newTestBoard(ToolText)
	b.PointerDown(Point{0, 0})
	b.KeyToken("a")
	b.PointerDown(Point{10, 10})

	committed := b.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "a", committed[0].(*Text).Content)
	assert.Equal(t, Point{10, 10}, b.Active().Attrs().Origin)
}

func TestStartShapeDiscardsActiveGeometry(t *testing.T) {
	b, _ := newTestBoard(ToolRectangle)
	b.StartShape(ToolRectangle, Point{0, 0}, DefaultSnapshot())
	b.ResizeActive(PointInput(Point{30, 30}))
	b.StartShape(ToolOval, Point{5, 5}, DefaultSnapshot())

	assert.Empty(t, b.Committed())
	_, isOval := b.Active().(*Oval)
	assert.True(t, isOval)
}

func TestToolChangePolicy(t *testing.T) {
	t.Run("geometry is discarded", func(t *testing.T) {
		b, _ := newTestBoard(ToolLine)
		b.PointerDown(Point{0, 0})
		b.PointerMove(Point{9, 9})
		b.ToolChanged(ToolCircle)

		assert.Nil(t, b.Active())
		assert.Empty(t, b.Committed())
		assert.Equal(t, ToolCircle, b.Tool())
	})
	t.Run("same tool keeps the active shape", func(t *testing.T) {
		b, _ := newTestBoard(ToolLine)
		b.PointerDown(Point{0, 0})
		b.ToolChanged(ToolLine)

		assert.NotNil(t, b.Active())
	})
	t.Run("text is committed", func(t *testing.T) {
		b, _ := newTestBoard(ToolText)
		b.PointerDown(Point{0, 0})
		b.KeyToken("k")
		b.ToolChanged(ToolLineList)

		assert.Nil(t, b.Active())
		require.Len(t, b.Committed(), 1)
		assert.Equal(t, "k", b.Committed()[0].(*Text).Content)
	})
	t.Run("text to text commits", func(t *testing.T) {
		b, _ := newTestBoard(ToolText)
		b.PointerDown(Point{0, 0})
		b.KeyToken("a")
		b.ToolChanged(ToolText)

		assert.Nil(t, b.Active())
		require.Len(t, b.Committed(), 1)
		assert.Equal(t, "a", b.Committed()[0].(*Text).Content)
		assert.Equal(t, ToolText, b.Tool())
	})
	t.Run("unknown tool is ignored", func(t *testing.T) {
		b, _ := newTestBoard(ToolLine)
		b.PointerDown(Point{0, 0})
		b.ToolChanged(Tool("lasso"))

		assert.Equal(t, ToolLine, b.Tool())
		assert.NotNil(t, b.Active())
	})
}

func TestInvalidToolLeavesBoardUntouched(t *testing.T) {
	b, rec := newTestBoard(ToolText)
	b.PointerDown(Point{0, 0})
	b.KeyToken("q")
	frames := len(rec.frames)
	before := snapshotOf(b)

	b.StartShape(Tool("lasso"), Point{1, 1}, DefaultSnapshot())
	b.StartShape(ToolMove, Point{1, 1}, DefaultSnapshot())

	assert.Equal(t, before, snapshotOf(b))
	assert.Len(t, rec.frames, frames)
}

func TestStaleEventsAreNoOps(t *testing.T) {
	b, rec := newTestBoard(ToolRectangle)
	b.ResizeActive(PointInput(Point{1, 1}))
	b.PointerMove(Point{1, 1})
	b.PointerUp()
	b.KeyToken("a")
	b.KeyToken(KeyEnter)
	b.CommitActive()

	assert.Empty(t, b.Committed())
	assert.Nil(t, b.Active())
	assert.Empty(t, rec.frames)
}

func TestPointerCancelDropsGeometry(t *testing.T) {
	b, _ := newTestBoard(ToolOval)
	b.PointerDown(Point{0, 0})
	b.PointerMove(Point{4, 4})
	b.PointerCancel()
	b.PointerUp()

	assert.Nil(t, b.Active())
	assert.Empty(t, b.Committed())
}

func TestClearAll(t *testing.T) {
	b, rec := newTestBoard(ToolRectangle)
	drawRect(b, Point{0, 0}, Point{1, 1})
	drawRect(b, Point{0, 0}, Point{2, 2})
	b.Undo()
	b.PointerDown(Point{3, 3})

	b.ClearAll()

	assert.Empty(t, b.Committed())
	assert.Nil(t, b.Active())
	assert.Empty(t, b.Undone())
	f := rec.last(t)
	assert.Empty(t, f.Committed)
	assert.Nil(t, f.Active)
}

func TestCommittedShapesAreFrozen(t *testing.T) {
	b, _ := newTestBoard(ToolLineList)
	b.PointerDown(Point{0, 0})
	b.PointerMove(Point{1, 1})
	b.PointerUp()

	s := b.Committed()[0].(*LineList)
	assert.True(t, s.Frozen())
	s.Resize(PointInput(Point{9, 9}))
	assert.Len(t, s.Points, 2)
}

func TestActiveNeverInCommitted(t *testing.T) {
	b, _ := newTestBoard(ToolLineList)
	drawRect(b, Point{0, 0}, Point{1, 1})
	b.ToolChanged(ToolLineList)
	b.PointerDown(Point{0, 0})

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.committed {
		assert.NotSame(t, b.active, s)
	}
	for _, s := range b.redo {
		for _, c := range b.committed {
			assert.NotSame(t, s, c)
		}
	}
}

func TestFramesFollowEveryChange(t *testing.T) {
	b, rec := newTestBoard(ToolLineList)
	b.PointerDown(Point{0, 0})
	b.PointerMove(Point{1, 0})
	b.PointerMove(Point{2, 0})
	b.PointerUp()

	require.Len(t, rec.frames, 4)
	for i, f := range rec.frames {
		assert.Equal(t, uint64(i+1), f.Revision)
	}
	assert.Len(t, rec.frames[2].Active.(*LineList).Points, 3)
	assert.Nil(t, rec.frames[3].Active)
	assert.Len(t, rec.frames[3].Committed, 1)

	// frames are detached from later edits
	assert.Len(t, rec.frames[1].Active.(*LineList).Points, 2)
}

func TestSettingsChangeOnlyAffectsNewShapes(t *testing.T) {
	b, _ := newTestBoard(ToolRectangle)
	b.PointerDown(Point{0, 0})

	red := "#FF0000"
	require.NoError(t, b.SettingsChanged(Partial{Color: &red}))
	assert.Equal(t, "#000000", b.Active().Attrs().Settings.Color)
	b.PointerUp()

	b.PointerDown(Point{1, 1})
	assert.Equal(t, red, b.Active().Attrs().Settings.Color)
	assert.Equal(t, "#000000", b.Committed()[0].Attrs().Settings.Color)
}

func TestEraserUsesWiderStroke(t *testing.T) {
	b, _ := newTestBoard(ToolEraseList)
	b.PointerDown(Point{0, 0})

	e, ok := b.Active().(*EraseList)
	require.True(t, ok)
	assert.Equal(t, DefaultSnapshot().Width+EraserExtraWidth, e.Settings.Width)
}
