package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

func newTestWidget(t *testing.T, tool state.Tool) (*BoardWidget, *state.Board) {
	t.Helper()
	test.NewTempApp(t)
	board := state.NewBoard(tool, nil)
	w := NewBoardWidget(board, nil, render.DefaultOptions())
	win := test.NewWindow(w)
	t.Cleanup(win.Close)
	return w, board
}

func primary(x, y float32) *desktop.MouseEvent {
	e := &desktop.MouseEvent{Button: desktop.MouseButtonPrimary}
	e.Position = fyne.NewPos(x, y)
	return e
}

func TestBoardWidgetDrawsWithMouse(t *testing.T) {
	w, board := newTestWidget(t, state.ToolRectangle)

	w.MouseDown(primary(10, 10))
	w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 20)}})
	require.NotNil(t, w.currentFrame().Active)

	w.MouseUp(primary(30, 20))
	w.DragEnd()

	committed := board.Committed()
	require.Len(t, committed, 1)
	r := committed[0].(*state.Rectangle)
	assert.Equal(t, 20.0, r.Width)
	assert.Equal(t, 10.0, r.Height)
	assert.Len(t, w.currentFrame().Committed, 1)
	assert.Nil(t, w.currentFrame().Active)
}

func TestBoardWidgetIgnoresSecondaryButton(t *testing.T) {
	w, board := newTestWidget(t, state.ToolLine)

	e := primary(5, 5)
	e.Button = desktop.MouseButtonSecondary
	w.MouseDown(e)
	assert.Nil(t, board.Active())
}

func TestBoardWidgetTypesText(t *testing.T) {
	w, board := newTestWidget(t, state.ToolText)

	w.MouseDown(primary(4, 40))
	w.MouseUp(primary(4, 40))
	for _, r := range "hey" {
		w.TypedRune(r)
	}
	w.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	w.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})

	committed := board.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "he", committed[0].(*state.Text).Content)
}

func TestBoardWidgetKeepsNewestFrame(t *testing.T) {
	w, _ := newTestWidget(t, state.ToolLine)

	w.RenderFrame(state.Frame{Revision: 5})
	w.RenderFrame(state.Frame{Revision: 3})
	assert.Equal(t, uint64(5), w.currentFrame().Revision)
}
