package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"PaintBoard/internal/state"
)

// pointsToPixels converts CSS points to pixels at 96 dpi, the unit a browser
// canvas uses for "36pt sans-serif".
const pointsToPixels = 96.0 / 72.0

// Fonts resolves font strings to faces, caching one face per string.
// Fonts is safe for concurrent use.
type Fonts struct {
	mu      sync.Mutex
	regular *text.FontSource
	mono    *text.FontSource
	faces   map[faceKey]text.Face
}

type faceKey struct {
	font  string
	scale float64
}

// NewFonts loads the embedded Go fonts.
func NewFonts() (*Fonts, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading regular font: %w", err)
	}
	mono, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading mono font: %w", err)
	}
	return &Fonts{regular: regular, mono: mono, faces: make(map[faceKey]text.Face)}, nil
}

// Face returns the face for a font string such as "36pt sans-serif",
// magnified by scale.
func (f *Fonts) Face(font string, scale float64) (text.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := faceKey{font, scale}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	size, family, err := state.ParseFont(font)
	if err != nil {
		return nil, err
	}
	src := f.regular
	if strings.EqualFold(family, "monospace") {
		src = f.mono
	}
	face := src.Face(size * pointsToPixels * scale)
	f.faces[key] = face
	return face, nil
}
