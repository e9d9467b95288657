package state

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tool identifies a drawing mode. The string values are the identifiers the
// browser front-end sends.
type Tool string

const (
	ToolRectangle Tool = "rectangle"
	ToolOval      Tool = "oval"
	ToolCircle    Tool = "circle"
	ToolLine      Tool = "line"
	ToolLineList  Tool = "lineList"
	ToolEraseList Tool = "eraseList"
	ToolText      Tool = "text"
	ToolMove      Tool = "move" // reserved, no shape behind it yet
)

// Tools lists the tools that produce a shape, in toolbar order.
var Tools = []Tool{ToolLineList, ToolLine, ToolRectangle, ToolOval, ToolCircle, ToolText, ToolEraseList}

// Key tokens with a meaning beyond "append this character".
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// Input is what a shape is resized with: the pointer position for geometric
// shapes, a key token for text.
type Input struct {
	Point Point
	Key   string
}

func PointInput(p Point) Input  { return Input{Point: p} }
func KeyInput(key string) Input { return Input{Key: key} }

// Shape is a drawable unit. The set of implementations is closed; render code
// switches over the concrete types.
type Shape interface {
	Attrs() *Base
	// Resize updates the geometry while the shape is active. It does nothing
	// once the shape has been committed.
	Resize(in Input)
	// Clone returns a deep copy detached from the receiver.
	Clone() Shape
	shape()
}

// Base holds the attributes every shape carries.
type Base struct {
	ID       string
	Origin   Point
	Settings Snapshot

	frozen bool
}

func newBase(origin Point, settings Snapshot) Base {
	return Base{ID: uuid.NewString(), Origin: origin, Settings: settings}
}

func (b *Base) Attrs() *Base { return b }

// Frozen reports whether the shape has been committed.
func (b *Base) Frozen() bool { return b.frozen }

func (b *Base) freeze() { b.frozen = true }

func (*Base) shape() {}

// Rectangle spans from Origin to Origin+(Width, Height). Width and Height are
// signed: the origin is the anchor corner, not necessarily the top-left.
type Rectangle struct {
	Base
	Width, Height float64
}

func (r *Rectangle) Resize(in Input) {
	if r.frozen {
		return
	}
	r.Width = in.Point.X - r.Origin.X
	r.Height = in.Point.Y - r.Origin.Y
}

func (r *Rectangle) Clone() Shape { c := *r; return &c }

// Oval is the ellipse inscribed in the rectangle Origin..Origin+(Width, Height).
type Oval struct {
	Base
	Width, Height float64
}

func (o *Oval) Resize(in Input) {
	if o.frozen {
		return
	}
	o.Width = in.Point.X - o.Origin.X
	o.Height = in.Point.Y - o.Origin.Y
}

func (o *Oval) Clone() Shape { c := *o; return &c }

// Circle is centered on Origin.
type Circle struct {
	Base
	Radius float64
}

func (c *Circle) Resize(in Input) {
	if c.frozen {
		return
	}
	c.Radius = math.Hypot(in.Point.X-c.Origin.X, in.Point.Y-c.Origin.Y)
}

func (c *Circle) Clone() Shape { cp := *c; return &cp }

type Line struct {
	Base
	End Point
}

func (l *Line) Resize(in Input) {
	if l.frozen {
		return
	}
	l.End = in.Point
}

func (l *Line) Clone() Shape { c := *l; return &c }

// LineList is a freehand stroke. Every pointer move is kept.
type LineList struct {
	Base
	Points []Point
}

func (l *LineList) Resize(in Input) {
	if l.frozen {
		return
	}
	l.Points = append(l.Points, in.Point)
}

func (l *LineList) Clone() Shape {
	c := *l
	c.Points = append([]Point(nil), l.Points...)
	return &c
}

// EraseList is a freehand stroke painted in the background color.
type EraseList struct {
	Base
	Points []Point
}

func (e *EraseList) Resize(in Input) {
	if e.frozen {
		return
	}
	e.Points = append(e.Points, in.Point)
}

func (e *EraseList) Clone() Shape {
	c := *e
	c.Points = append([]Point(nil), e.Points...)
	return &c
}

// Text is a single line drawn with its baseline starting at Origin.
type Text struct {
	Base
	Content string
}

// Resize appends a printable character or, for KeyBackspace, drops the last
// one. Enter is handled by the board, not here.
func (t *Text) Resize(in Input) {
	if t.frozen {
		return
	}
	switch {
	case in.Key == KeyBackspace:
		if _, size := utf8.DecodeLastRuneInString(t.Content); size > 0 {
			t.Content = t.Content[:len(t.Content)-size]
		}
	case isPrintable(in.Key):
		t.Content += in.Key
	}
}

func (t *Text) Clone() Shape { c := *t; return &c }

func isPrintable(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	return size > 0 && size == len(key) && r != utf8.RuneError && unicode.IsPrint(r)
}
