package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"PaintBoard/internal/config"
	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

// RunApp opens the drawing window for board and blocks until it is closed.
func RunApp(cfg config.Config, board *state.Board, fonts *render.Fonts) {
	myApp := app.New()
	myWindow := myApp.NewWindow("PaintBoard")
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	// Create the interactive board widget
	boardWidget := NewBoardWidget(board, fonts, cfg.RenderOptions())

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board)

	c := myWindow.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { board.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { board.Redo() })

	// Set up the main layout
	content := container.NewBorder(toolbar, nil, nil, nil, boardWidget)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
