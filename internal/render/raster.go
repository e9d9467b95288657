package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"PaintBoard/internal/state"
)

// Raster is a Target backed by a gogpu/gg software context.
type Raster struct {
	dc    *gg.Context
	fonts *Fonts
	scale float64
}

var _ Target = (*Raster)(nil)

// NewRaster creates a width×height pixel target. scale maps board units to
// pixels, so a HiDPI window can paint at device resolution.
func NewRaster(width, height int, scale float64, fonts *Fonts) *Raster {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(width, height)
	dc.Scale(scale, scale)
	return &Raster{dc: dc, fonts: fonts, scale: scale}
}

func (r *Raster) Bounds() state.Rect {
	return state.Rect{
		Width:  float64(r.dc.Width()) / r.scale,
		Height: float64(r.dc.Height()) / r.scale,
	}
}

func (r *Raster) Clear(bg color.Color) {
	if bg == nil {
		r.dc.Clear()
		return
	}
	r.dc.ClearWithColor(gg.FromColor(bg))
}

func (r *Raster) Rect(x, y, w, h float64, st Style) error {
	r.dc.DrawRectangle(x, y, w, h)
	return r.paint(st)
}

func (r *Raster) Ellipse(cx, cy, rx, ry float64, st Style) error {
	r.dc.DrawEllipse(cx, cy, rx, ry)
	return r.paint(st)
}

func (r *Raster) Polyline(points []state.Point, st Style) error {
	if len(points) == 0 {
		return nil
	}
	r.dc.MoveTo(points[0].X, points[0].Y)
	if len(points) == 1 {
		// a single click still leaves a dot
		r.dc.LineTo(points[0].X, points[0].Y)
	}
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	st.Fill = false
	st.Round = true
	return r.paint(st)
}

func (r *Raster) Text(s string, x, y float64, font string, c color.Color) error {
	if r.fonts == nil {
		return fmt.Errorf("raster: no fonts for %q", font)
	}
	face, err := r.fonts.Face(font, r.scale)
	if err != nil {
		return err
	}
	// glyphs are placed in pixel space, outside the context transform
	px, py := r.dc.TransformPoint(x, y)
	r.dc.SetFont(face)
	r.dc.SetColor(c)
	r.dc.DrawString(s, px, py)
	return nil
}

func (r *Raster) paint(st Style) error {
	r.dc.SetColor(st.Color)
	if st.Fill {
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("raster fill: %w", err)
		}
		return nil
	}
	r.dc.SetLineWidth(st.Width)
	if st.Round {
		r.dc.SetLineCap(gg.LineCapRound)
		r.dc.SetLineJoin(gg.LineJoinRound)
	} else {
		r.dc.SetLineCap(gg.LineCapButt)
		r.dc.SetLineJoin(gg.LineJoinMiter)
	}
	if err := r.dc.Stroke(); err != nil {
		return fmt.Errorf("raster stroke: %w", err)
	}
	return nil
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) Close() error { return r.dc.Close() }
