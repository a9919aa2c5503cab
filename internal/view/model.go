// Package view derives what a game screen shows from an engine snapshot.
// Both the HTML and the terminal front ends render a Model.
package view

import (
	"fmt"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
)

// Fixed UI strings shared by both front ends.
const (
	ButtonStart   = "Start"
	ButtonNewGame = "New Game"
	StatusTie     = "It's a tie!"
	EmptyLabel    = "empty square"
)

// Cell is one square of the rendered board.
type Cell struct {
	Index     int
	Row       int
	Col       int
	Symbol    string
	Label     string
	Playable  bool
	Highlight bool
}

// Model is everything a front end needs to draw one frame.
type Model struct {
	Cells    [9]Cell
	Rows     [3][3]Cell
	Status   string
	Accent   bool
	Finished bool
	Button   string
	Step     int
}

// Build renders the engine's current snapshot.
func Build(e *domain.Engine) Model {
	board := e.CurrentBoard()
	outcome := e.Outcome()

	m := Model{
		Status:   StatusText(outcome, e.Next()),
		Accent:   outcome.Terminal(),
		Finished: outcome.Terminal(),
		Button:   ButtonLabel(e.Step()),
		Step:     e.Step(),
	}
	for i, c := range board {
		cell := Cell{
			Index:     i,
			Row:       i / 3,
			Col:       i % 3,
			Symbol:    c.String(),
			Label:     c.String(),
			Playable:  e.CanMove(i),
			Highlight: outcome.Status == domain.Win && outcome.Line.Contains(i),
		}
		if c == domain.Empty {
			cell.Label = EmptyLabel
		}
		m.Cells[i] = cell
		m.Rows[cell.Row][cell.Col] = cell
	}
	return m
}

// StatusText is the line shown above the board.
func StatusText(o domain.Outcome, next domain.Cell) string {
	switch o.Status {
	case domain.Win:
		return fmt.Sprintf("Player %s wins!", o.Winner)
	case domain.Tie:
		return StatusTie
	default:
		return fmt.Sprintf("Next turn: Player %s", next)
	}
}

// ButtonLabel names the reset control: Start before any move, New Game after.
func ButtonLabel(step int) string {
	if step == 0 {
		return ButtonStart
	}
	return ButtonNewGame
}
