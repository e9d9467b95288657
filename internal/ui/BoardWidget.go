package ui

import (
	"image"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

// BoardWidget shows a board and turns mouse and keyboard input into board
// events. It is the board's renderer: every frame the board produces is
// kept and painted on the next refresh.
type BoardWidget struct {
	widget.BaseWidget
	board *state.Board
	fonts *render.Fonts
	opts  render.Options

	mu    sync.Mutex
	frame state.Frame
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ state.Renderer = (*BoardWidget)(nil)

func NewBoardWidget(board *state.Board, fonts *render.Fonts, opts render.Options) *BoardWidget {
	b := &BoardWidget{
		board: board,
		fonts: fonts,
		opts:  opts,
		frame: board.Frame(),
	}
	b.ExtendBaseWidget(b)
	board.SetRenderer(b)
	return b
}

func (b *BoardWidget) RenderFrame(f state.Frame) {
	b.mu.Lock()
	if f.Revision < b.frame.Revision {
		b.mu.Unlock()
		return
	}
	b.frame = f
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) currentFrame() state.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
	b.board.PointerDown(toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.board.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.board.PointerMove(toPoint(e.Position))
}

// DragEnd commits too: depending on the driver the release may arrive here
// instead of MouseUp. A second PointerUp is a no-op.
func (b *BoardWidget) DragEnd() {
	b.board.PointerUp()
}

func (b *BoardWidget) TypedRune(r rune) {
	b.board.KeyToken(string(r))
}

func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		b.board.KeyToken(state.KeyEnter)
	case fyne.KeyBackspace:
		b.board.KeyToken(state.KeyBackspace)
	}
}

func (b *BoardWidget) FocusGained() {}
func (b *BoardWidget) FocusLost()   {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(r.draw)
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

// draw paints the latest frame at device resolution.
func (r *boardWidgetRenderer) draw(w, h int) image.Image {
	f := r.board.currentFrame()
	scale := 1.0
	if size := r.board.Size(); size.Width > 0 {
		scale = float64(w) / float64(size.Width)
	}
	raster := render.NewRaster(w, h, scale, r.board.fonts)
	defer raster.Close()
	if err := render.FrameOf(raster, f, r.board.opts); err != nil {
		log.Printf("[UI] Rendering frame %d: %v", f.Revision, err)
	}
	return raster.Image()
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
