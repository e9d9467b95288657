// Package render paints board shapes onto a 2D drawing target.
//
// The painting rules live here, independent of where the pixels end up:
// rectangles, ovals and circles are filled or outlined according to their
// settings, lines and freehand strokes are always stroked, erase strokes use
// the background color, and text is always drawn solid.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"PaintBoard/internal/state"
)

// Style describes how a path is painted.
type Style struct {
	Color color.Color
	Fill  bool
	Width float64
	// Round strokes get round caps and joins; others are butt capped and
	// mitered.
	Round bool
}

// Target is a surface shapes can be painted on.
type Target interface {
	// Bounds is the visible area in board coordinates.
	Bounds() state.Rect
	Clear(bg color.Color)
	Rect(x, y, w, h float64, st Style) error
	Ellipse(cx, cy, rx, ry float64, st Style) error
	Polyline(points []state.Point, st Style) error
	// Text draws s with its baseline starting at (x, y).
	Text(s string, x, y float64, font string, c color.Color) error
}

// Options holds the frame-wide rendering policy.
type Options struct {
	Background color.Color
}

func DefaultOptions() Options {
	return Options{Background: color.White}
}

// background is the color frames are cleared to and erase strokes paint
// with. A zero Options paints on white.
func (o Options) background() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}

// ParseColor converts a "#RRGGBB" or "#RGB" string to a color.
func ParseColor(hex string) color.Color {
	return gg.Hex(hex).Color()
}

// Frame clears t and paints committed oldest first, then active on top.
func Frame(t Target, committed []state.Shape, active state.Shape, opts Options) error {
	t.Clear(opts.background())
	view := t.Bounds()
	for _, s := range committed {
		if err := shapeIn(t, view, s, opts); err != nil {
			return err
		}
	}
	if active != nil {
		return shapeIn(t, view, active, opts)
	}
	return nil
}

// FrameOf paints a board frame.
func FrameOf(t Target, f state.Frame, opts Options) error {
	return Frame(t, f.Committed, f.Active, opts)
}

func shapeIn(t Target, view state.Rect, s state.Shape, opts Options) error {
	if b, ok := state.Bounds(s); ok && !b.Overlaps(view) {
		return nil
	}
	return Shape(t, s, opts)
}

// Shape paints a single shape.
func Shape(t Target, s state.Shape, opts Options) error {
	set := s.Attrs().Settings
	o := s.Attrs().Origin
	st := Style{Color: ParseColor(set.Color), Fill: set.Filled, Width: set.Width}

	switch v := s.(type) {
	case *state.Rectangle:
		x, w := normalize(o.X, v.Width)
		y, h := normalize(o.Y, v.Height)
		return t.Rect(x, y, w, h, st)
	case *state.Oval:
		return t.Ellipse(o.X+v.Width/2, o.Y+v.Height/2, math.Abs(v.Width/2), math.Abs(v.Height/2), st)
	case *state.Circle:
		return t.Ellipse(o.X, o.Y, v.Radius, v.Radius, st)
	case *state.Line:
		st.Fill = false
		return t.Polyline([]state.Point{o, v.End}, st)
	case *state.LineList:
		st.Fill = false
		return t.Polyline(v.Points, st)
	case *state.EraseList:
		st.Fill = false
		st.Color = opts.background()
		return t.Polyline(v.Points, st)
	case *state.Text:
		if v.Content == "" {
			return nil
		}
		return t.Text(v.Content, o.X, o.Y, set.Font, st.Color)
	default:
		return fmt.Errorf("render: unknown shape %T", s)
	}
}

// normalize turns an anchor and a signed extent into a start and a
// non-negative extent.
func normalize(anchor, extent float64) (float64, float64) {
	if extent < 0 {
		return anchor + extent, -extent
	}
	return anchor, extent
}
