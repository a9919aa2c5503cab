package tui

import (
	"github.com/rivo/tview"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
)

// App is the terminal game: the board on top, the status panel below.
type App struct {
	tv    *tview.Application
	Board *Board
}

// NewApp builds the layout around a board for e.
func NewApp(e *domain.Engine) *App {
	tv := tview.NewApplication()

	status := tview.NewTextView()
	status.SetBorder(true)
	status.SetBorderPadding(0, 0, 1, 1)
	status.SetTitle(" Status ")
	status.SetTitleAlign(tview.AlignLeft)

	board := NewBoard(e, status, tv.Stop)
	board.Box.SetBorder(true).SetTitle(" Tic Tac Toe ")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(board.Box, gridHeight+2, 0, true).
		AddItem(status, 5, 0, false)

	tv.SetRoot(layout, true).SetFocus(board.Box)
	return &App{tv: tv, Board: board}
}

// Run blocks until the user quits.
func (a *App) Run() error {
	return a.tv.Run()
}
