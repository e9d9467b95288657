package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidWidth = errors.New("stroke width must be positive")
	ErrInvalidFont  = errors.New(`font must look like "36pt sans-serif"`)
)

const (
	EraserExtraWidth = 10

	MinWidth  = 1
	MaxWidth  = 70
	WidthStep = 4

	MinFontSize  = 6
	MaxFontSize  = 70
	FontSizeStep = 4
)

// Snapshot is the drawing style a shape was created with. It is a plain value:
// copying it detaches it from the settings store.
type Snapshot struct {
	Color  string  `json:"color"`
	Filled bool    `json:"filled"`
	Width  float64 `json:"width"`
	Font   string  `json:"font"`
}

// DefaultSnapshot mirrors the style a fresh board starts with.
func DefaultSnapshot() Snapshot {
	return Snapshot{Color: "#000000", Filled: false, Width: 10, Font: "36pt sans-serif"}
}

// Validate checks every field of the snapshot.
func (s Snapshot) Validate() error {
	if !IsHexColor(s.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, s.Color)
	}
	if s.Width <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, s.Width)
	}
	if _, _, err := ParseFont(s.Font); err != nil {
		return err
	}
	return nil
}

// Partial carries the fields of a settings change; nil fields are left alone.
type Partial struct {
	Color  *string  `json:"color,omitempty"`
	Filled *bool    `json:"filled,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Font   *string  `json:"font,omitempty"`
}

// Settings is the mutable style store consulted when a shape starts.
type Settings struct {
	mu      sync.RWMutex
	current Snapshot
}

func NewSettings(initial Snapshot) *Settings {
	return &Settings{current: initial}
}

// Current returns a copy of the settings.
func (s *Settings) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentEraser returns a copy of the settings with the stroke widened by
// EraserExtraWidth.
func (s *Settings) CurrentEraser() Snapshot {
	snap := s.Current()
	snap.Width += EraserExtraWidth
	return snap
}

// For returns the snapshot a shape started with tool should use.
func (s *Settings) For(tool Tool) Snapshot {
	if tool == ToolEraseList {
		return s.CurrentEraser()
	}
	return s.Current()
}

// Apply merges p into the settings. Invalid fields are rejected as a whole:
// either every field in p is applied or none is.
func (s *Settings) Apply(p Partial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if p.Color != nil {
		next.Color = *p.Color
	}
	if p.Filled != nil {
		next.Filled = *p.Filled
	}
	if p.Width != nil {
		next.Width = *p.Width
	}
	if p.Font != nil {
		next.Font = *p.Font
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.current = next
	return nil
}

// StepWidth moves the stroke width by delta steps of WidthStep, clamped to
// [MinWidth, MaxWidth].
func (s *Settings) StepWidth(delta int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Width = clamp(s.current.Width+float64(delta*WidthStep), MinWidth, MaxWidth)
	return s.current.Width
}

// StepFontSize moves the font size by delta steps of FontSizeStep, clamped to
// [MinFontSize, MaxFontSize]. The family is kept.
func (s *Settings) StepFontSize(delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	size, family, err := ParseFont(s.current.Font)
	if err != nil {
		return s.current.Font
	}
	size = clamp(size+float64(delta*FontSizeStep), MinFontSize, MaxFontSize)
	s.current.Font = FormatFont(size, family)
	return s.current.Font
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseFont splits a font string such as "36pt sans-serif" into its point
// size and family.
func ParseFont(font string) (size float64, family string, err error) {
	sizePart, family, ok := strings.Cut(strings.TrimSpace(font), " ")
	if !ok || !strings.HasSuffix(sizePart, "pt") {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidFont, font)
	}
	size, err = strconv.ParseFloat(strings.TrimSuffix(sizePart, "pt"), 64)
	if err != nil || size <= 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidFont, font)
	}
	return size, strings.TrimSpace(family), nil
}

func FormatFont(size float64, family string) string {
	return strconv.FormatFloat(size, 'f', -1, 64) + "pt " + family
}

// IsHexColor accepts "#RGB" and "#RRGGBB".
func IsHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// NamedColor is one entry of the toolbar palette.
type NamedColor struct {
	Name string
	Hex  string
}

var Palette = []NamedColor{
	{"red", "#FF0000"},
	{"orange", "#FFA500"},
	{"yellow", "#FFFF00"},
	{"light-green", "#00FF00"},
	{"dark-green", "#008000"},
	{"sky-blue", "#87CEEB"},
	{"blue", "#0000FF"},
	{"purple", "#800080"},
	{"fuchsia", "#FF00FF"},
	{"brown", "#964B00"},
	{"pink", "#FFC0CB"},
	{"white", "#FFFFFF"},
	{"black", "#000000"},
}

// PaletteColor returns the hex value of the named palette color.
func PaletteColor(name string) (string, bool) {
	for _, c := range Palette {
		if c.Name == name {
			return c.Hex, true
		}
	}
	return "", false
}
