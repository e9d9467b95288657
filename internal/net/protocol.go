package net

import (
	"errors"
	"fmt"

	"PaintBoard/internal/state"
)

// Event types a browser client sends.
const (
	EventPointerDown   = "pointerDown"
	EventPointerMove   = "pointerMove"
	EventPointerUp     = "pointerUp"
	EventPointerCancel = "pointerCancel"
	EventKey           = "key"
	EventUndo          = "undo"
	EventRedo          = "redo"
	EventClear         = "clear"
	EventTool          = "tool"
	EventSettings      = "settings"
	EventSnapshot      = "snapshot"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Event is one user intent coming from the browser. Only the fields relevant
// to Type are read.
type Event struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Key  string  `json:"key,omitempty"`
	Tool string  `json:"tool,omitempty"`
	state.Partial
}

// Apply feeds ev into the board. Snapshot requests carry no board change and
// are handled by the session.
func Apply(b *state.Board, ev Event) error {
	p := state.Point{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case EventPointerDown:
		b.PointerDown(p)
	case EventPointerMove:
		b.PointerMove(p)
	case EventPointerUp:
		b.PointerUp()
	case EventPointerCancel:
		b.PointerCancel()
	case EventKey:
		b.KeyToken(ev.Key)
	case EventUndo:
		b.Undo()
	case EventRedo:
		b.Redo()
	case EventClear:
		b.ClearAll()
	case EventTool:
		tool, err := state.ParseTool(ev.Tool)
		if err != nil {
			return err
		}
		b.ToolChanged(tool)
	case EventSettings:
		// browsers may name a palette color instead of sending its hex value
		if ev.Color != nil {
			if hex, ok := state.PaletteColor(*ev.Color); ok {
				ev.Color = &hex
			}
		}
		if err := b.SettingsChanged(ev.Partial); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

// FrameMessage is sent to the browser after every board change.
type FrameMessage struct {
	Type     string      `json:"type"`
	Revision uint64      `json:"revision"`
	Shapes   []ShapeJSON `json:"shapes"`
	Active   *ShapeJSON  `json:"active"`
}

// ErrorMessage reports a rejected event; the connection stays open.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ShapeJSON is the wire form of a shape. Geometry fields are present only
// for the kinds that have them.
type ShapeJSON struct {
	ID       string         `json:"id"`
	Kind     state.Tool     `json:"kind"`
	Origin   state.Point    `json:"origin"`
	Settings state.Snapshot `json:"settings"`
	Width    *float64       `json:"width,omitempty"`
	Height   *float64       `json:"height,omitempty"`
	Radius   *float64       `json:"radius,omitempty"`
	End      *state.Point   `json:"end,omitempty"`
	Points   []state.Point  `json:"points,omitempty"`
	Text     *string        `json:"text,omitempty"`
}

func NewFrameMessage(f state.Frame) FrameMessage {
	msg := FrameMessage{
		Type:     "frame",
		Revision: f.Revision,
		Shapes:   make([]ShapeJSON, 0, len(f.Committed)),
	}
	for _, s := range f.Committed {
		msg.Shapes = append(msg.Shapes, EncodeShape(s))
	}
	if f.Active != nil {
		active := EncodeShape(f.Active)
		msg.Active = &active
	}
	return msg
}

func EncodeShape(s state.Shape) ShapeJSON {
	a := s.Attrs()
	out := ShapeJSON{ID: a.ID, Kind: state.ToolOf(s), Origin: a.Origin, Settings: a.Settings}
	switch v := s.(type) {
	case *state.Rectangle:
		out.Width, out.Height = ptr(v.Width), ptr(v.Height)
	case *state.Oval:
		out.Width, out.Height = ptr(v.Width), ptr(v.Height)
	case *state.Circle:
		out.Radius = ptr(v.Radius)
	case *state.Line:
		end := v.End
		out.End = &end
	case *state.LineList:
		out.Points = v.Points
	case *state.EraseList:
		out.Points = v.Points
	case *state.Text:
		out.Text = ptr(v.Content)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
