package state

import "math"

// Rect is an axis-aligned area with non-negative Width and Height.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Overlaps reports whether r and o share at least one point.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Bounds returns the area a shape can paint, stroke included. Text has no
// geometric bounds (its extent depends on font metrics) and reports false.
func Bounds(s Shape) (Rect, bool) {
	pad := s.Attrs().Settings.Width / 2
	o := s.Attrs().Origin
	switch v := s.(type) {
	case *Rectangle:
		return boxAround(o, Point{o.X + v.Width, o.Y + v.Height}, pad), true
	case *Oval:
		return boxAround(o, Point{o.X + v.Width, o.Y + v.Height}, pad), true
	case *Circle:
		r := v.Radius + pad
		return Rect{X: o.X - r, Y: o.Y - r, Width: 2 * r, Height: 2 * r}, true
	case *Line:
		return boxAround(o, v.End, pad), true
	case *LineList:
		return pointsBounds(v.Points, pad), true
	case *EraseList:
		return pointsBounds(v.Points, pad), true
	}
	return Rect{}, false
}

func boxAround(a, b Point, pad float64) Rect {
	return pointsBounds([]Point{a, b}, pad)
}

func pointsBounds(points []Point, pad float64) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{
		X:      minX - pad,
		Y:      minY - pad,
		Width:  maxX - minX + 2*pad,
		Height: maxY - minY + 2*pad,
	}
}
