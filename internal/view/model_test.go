package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
)

func play(e *domain.Engine, moves ...int) *domain.Engine {
	for _, m := range moves {
		e.ApplyMove(m)
	}
	return e
}

func TestBuild_NewGame(t *testing.T) {
	// Given: a fresh engine
	e := domain.New()

	// When: the model is built
	m := Build(e)

	// Then: every cell is empty and playable, X is up and the button reads Start
	assert.Equal(t, "Next turn: Player X", m.Status)
	assert.Equal(t, ButtonStart, m.Button)
	assert.False(t, m.Finished)
	assert.False(t, m.Accent)
	for i, c := range m.Cells {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, "", c.Symbol)
		assert.Equal(t, EmptyLabel, c.Label)
		assert.True(t, c.Playable, "cell %d", i)
		assert.False(t, c.Highlight, "cell %d", i)
	}
}

func TestBuild_AfterMove(t *testing.T) {
	// Given: X has taken the center
	e := play(domain.New(), 4)

	// When
	m := Build(e)

	// Then: O is up, the center shows X and cannot be played again
	assert.Equal(t, "Next turn: Player O", m.Status)
	assert.Equal(t, ButtonNewGame, m.Button)
	assert.Equal(t, "X", m.Cells[4].Symbol)
	assert.Equal(t, "X", m.Cells[4].Label)
	assert.False(t, m.Cells[4].Playable)
	assert.Equal(t, m.Cells[4], m.Rows[1][1])
}

func TestBuild_Win(t *testing.T) {
	// Given: X completes the top row
	e := play(domain.New(), 0, 3, 1, 4, 2)

	// When
	m := Build(e)

	// Then: the row is highlighted and nothing is playable
	assert.Equal(t, "Player X wins!", m.Status)
	assert.True(t, m.Finished)
	assert.True(t, m.Accent)
	for i, c := range m.Cells {
		assert.False(t, c.Playable, "cell %d", i)
		assert.Equal(t, i <= 2, c.Highlight, "cell %d", i)
	}
}

func TestBuild_Tie(t *testing.T) {
	// Given: a full board with no line
	e := play(domain.New(), 0, 1, 2, 4, 3, 5, 7, 6, 8)

	// When
	m := Build(e)

	// Then
	assert.Equal(t, StatusTie, m.Status)
	assert.True(t, m.Finished)
	for _, c := range m.Cells {
		assert.False(t, c.Highlight)
		assert.False(t, c.Playable)
	}
}

func TestStatusText_OWins(t *testing.T) {
	o := domain.Outcome{Status: domain.Win, Winner: domain.O, Line: domain.Lines[7]}
	assert.Equal(t, "Player O wins!", StatusText(o, domain.X))
}

func TestButtonLabel(t *testing.T) {
	assert.Equal(t, "Start", ButtonLabel(0))
	assert.Equal(t, "New Game", ButtonLabel(1))
	assert.Equal(t, "New Game", ButtonLabel(9))
}

func TestBuild_ButtonStaysNewGameAfterWin(t *testing.T) {
	// Given: a finished game with illegal moves attempted afterwards
	e := play(domain.New(), 0, 3, 1, 4, 2, 8, 5)

	// When
	m := Build(e)

	// Then: the game is still over and the button still offers a new game
	assert.Equal(t, "Player X wins!", m.Status)
	assert.Equal(t, ButtonNewGame, m.Button)
	assert.Equal(t, 5, m.Step)
}
