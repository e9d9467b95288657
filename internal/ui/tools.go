package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(render.ParseColor(s.Hex))
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *state.Board) fyne.CanvasObject {
	settings := board.Settings()

	toolNames := make([]string, 0, len(state.Tools))
	for _, t := range state.Tools {
		toolNames = append(toolNames, string(t))
	}
	toolSelect := widget.NewSelect(toolNames, func(name string) {
		board.ToolChanged(state.Tool(name))
	})
	toolSelect.SetSelected(string(board.Tool()))

	history := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearAll),
	)

	// --- Color Palette ---
	onColorTapped := func(hex string) {
		if err := board.SettingsChanged(state.Partial{Color: &hex}); err != nil {
			log.Printf("[UI] Color %s rejected: %v", hex, err)
		}
	}
	colorBox := container.NewHBox()
	for _, c := range state.Palette {
		colorBox.Add(newColorSwatch(c.Hex, onColorTapped))
	}

	filled := widget.NewCheck("Filled", func(on bool) {
		if err := board.SettingsChanged(state.Partial{Filled: &on}); err != nil {
			log.Printf("[UI] Fill toggle rejected: %v", err)
		}
	})
	filled.SetChecked(settings.Current().Filled)

	// --- Stroke width and font size steppers ---
	widthLabel := widget.NewLabel(formatWidth(settings.Current().Width))
	stepWidth := func(delta int) func() {
		return func() { widthLabel.SetText(formatWidth(settings.StepWidth(delta))) }
	}
	fontLabel := widget.NewLabel(settings.Current().Font)
	stepFont := func(delta int) func() {
		return func() { fontLabel.SetText(settings.StepFontSize(delta)) }
	}

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		history,
		widget.NewSeparator(),
		colorBox,
		filled,
		widget.NewSeparator(),
		widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), stepWidth(-1)),
		widthLabel,
		widget.NewButtonWithIcon("", theme.ContentAddIcon(), stepWidth(+1)),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), stepFont(-1)),
		fontLabel,
		widget.NewButtonWithIcon("", theme.ContentAddIcon(), stepFont(+1)),
		layout.NewSpacer(),
	)
}

func formatWidth(w float64) string {
	return fmt.Sprintf("%gpx", w)
}
