// Package tui draws a game in the terminal with tview.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/view"
)

const (
	cellWidth  = 3
	gridWidth  = cellWidth*3 + 2
	gridHeight = 5
)

var (
	styleGrid      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHint      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleX         = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x1976D2)).Bold(true)
	styleO         = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xBDBDBD)).Bold(true)
	accent         = tcell.NewHexColor(0xFBC02D)
	cursorBG       = tcell.ColorDimGray
	keyHelp        = "arrows/hjkl move · enter play · 1-9 play · q quit"
	statusTemplate = "%s\n[r] %s\n%s"
)

// Board is a tview primitive over a single engine. All engine access happens
// on tview's event loop.
type Board struct {
	Box    *tview.Box
	engine *domain.Engine
	status *tview.TextView
	cursor int
	onQuit func()
}

// NewBoard creates the board widget. status may be nil; onQuit is called for q/Esc.
func NewBoard(e *domain.Engine, status *tview.TextView, onQuit func()) *Board {
	b := &Board{
		Box:    tview.NewBox(),
		engine: e,
		status: status,
		cursor: 4,
		onQuit: onQuit,
	}
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetInputCapture(b.HandleKey)
	b.refresh()
	return b
}

// Cursor returns the selected board index.
func (b *Board) Cursor() int { return b.cursor }

// MoveCursor shifts the selection, staying on the board.
func (b *Board) MoveCursor(dx, dy int) {
	row, col := b.cursor/3+dy, b.cursor%3+dx
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return
	}
	b.cursor = row*3 + col
}

// Play applies a move at idx and moves the cursor there.
func (b *Board) Play(idx int) {
	if idx < 0 || idx > 8 {
		return
	}
	b.cursor = idx
	b.engine.ApplyMove(idx)
	b.refresh()
}

// Reset starts a new game and recenters the cursor.
func (b *Board) Reset() {
	b.engine.Reset()
	b.cursor = 4
	b.refresh()
}

// HandleKey is the input capture of the board box.
func (b *Board) HandleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyUp:
		b.MoveCursor(0, -1)
	case tcell.KeyDown:
		b.MoveCursor(0, 1)
	case tcell.KeyLeft:
		b.MoveCursor(-1, 0)
	case tcell.KeyRight:
		b.MoveCursor(1, 0)
	case tcell.KeyEnter:
		b.Play(b.cursor)
	case tcell.KeyEsc:
		b.quit()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r >= '1' && r <= '9':
			b.Play(int(r - '1'))
		case r == 'h':
			b.MoveCursor(-1, 0)
		case r == 'j':
			b.MoveCursor(0, 1)
		case r == 'k':
			b.MoveCursor(0, -1)
		case r == 'l':
			b.MoveCursor(1, 0)
		case r == ' ':
			b.Play(b.cursor)
		case r == 'r':
			b.Reset()
		case r == 'q':
			b.quit()
		default:
			return ev
		}
	default:
		return ev
	}
	return nil
}

func (b *Board) quit() {
	if b.onQuit != nil {
		b.onQuit()
	}
}

func (b *Board) refresh() {
	if b.status == nil {
		return
	}
	m := view.Build(b.engine)
	b.status.SetText(fmt.Sprintf(statusTemplate, m.Status, m.Button, keyHelp))
	if m.Accent {
		b.status.SetTextColor(accent)
	} else {
		b.status.SetTextColor(tview.Styles.PrimaryTextColor)
	}
}

func (b *Board) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	m := view.Build(b.engine)
	ox := x + (width-gridWidth)/2
	oy := y + (height-gridHeight)/2
	if ox < x {
		ox = x
	}
	if oy < y {
		oy = y
	}

	// grid lines
	for row := 0; row < gridHeight; row++ {
		for col := 0; col < gridWidth; col++ {
			vertical := col == cellWidth || col == cellWidth*2+1
			switch {
			case row%2 == 1 && vertical:
				screen.SetContent(ox+col, oy+row, '┼', nil, styleGrid)
			case row%2 == 1:
				screen.SetContent(ox+col, oy+row, '─', nil, styleGrid)
			case vertical:
				screen.SetContent(ox+col, oy+row, '│', nil, styleGrid)
			}
		}
	}

	for _, c := range m.Cells {
		cx := ox + c.Col*(cellWidth+1)
		cy := oy + c.Row*2
		var style tcell.Style
		r := rune('1' + c.Index)
		switch c.Symbol {
		case "X":
			style, r = styleX, 'X'
		case "O":
			style, r = styleO, 'O'
		default:
			style = styleHint
		}
		if c.Highlight {
			style = style.Background(accent).Foreground(tcell.ColorBlack)
		} else if c.Index == b.cursor && !m.Finished {
			style = style.Background(cursorBG)
		}
		for i := 0; i < cellWidth; i++ {
			ch := ' '
			if i == cellWidth/2 {
				ch = r
			}
			screen.SetContent(cx+i, cy, ch, nil, style)
		}
	}
	return x, y, width, height
}
