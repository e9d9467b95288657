package state

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTool        = errors.New("invalid tool")
	ErrToolNotImplemented = errors.New("tool not implemented")
)

// NewShape creates the shape drawn by tool, anchored at origin, with zero
// extent.
func NewShape(tool Tool, origin Point, settings Snapshot) (Shape, error) {
	base := newBase(origin, settings)
	switch tool {
	case ToolRectangle:
		return &Rectangle{Base: base}, nil
	case ToolOval:
		return &Oval{Base: base}, nil
	case ToolCircle:
		return &Circle{Base: base}, nil
	case ToolLine:
		return &Line{Base: base, End: origin}, nil
	case ToolLineList:
		return &LineList{Base: base, Points: []Point{origin}}, nil
	case ToolEraseList:
		return &EraseList{Base: base, Points: []Point{origin}}, nil
	case ToolText:
		return &Text{Base: base}, nil
	case ToolMove:
		return nil, fmt.Errorf("%w: %s", ErrToolNotImplemented, tool)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTool, string(tool))
	}
}

// ParseTool validates a tool identifier. The reserved move tool is accepted.
func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolRectangle, ToolOval, ToolCircle, ToolLine, ToolLineList, ToolEraseList, ToolText, ToolMove:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTool, s)
}

// ToolOf reports the tool that creates shapes like s.
func ToolOf(s Shape) Tool {
	switch s.(type) {
	case *Rectangle:
		return ToolRectangle
	case *Oval:
		return ToolOval
	case *Circle:
		return ToolCircle
	case *Line:
		return ToolLine
	case *LineList:
		return ToolLineList
	case *EraseList:
		return ToolEraseList
	case *Text:
		return ToolText
	}
	return ""
}
