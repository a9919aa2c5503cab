package domain

// Engine holds the move timeline of a single game and the step currently shown.
// Turn and outcome are always recomputed from the current board.
// An Engine is not safe for concurrent use.
type Engine struct {
	history []Board
	step    int
}

// New returns an engine positioned on an empty board with X to move.
func New() *Engine {
	return &Engine{history: []Board{{}}}
}

// Step returns the index of the displayed snapshot.
func (e *Engine) Step() int { return e.step }

// Len returns the number of snapshots in the history.
func (e *Engine) Len() int { return len(e.history) }

// History returns a copy of all snapshots, starting with the empty board.
func (e *Engine) History() []Board {
	out := make([]Board, len(e.history))
	copy(out, e.history)
	return out
}

// CurrentBoard returns the displayed snapshot.
func (e *Engine) CurrentBoard() Board { return e.history[e.step] }

// Next returns the symbol that moves next: X on even steps, O on odd ones.
func (e *Engine) Next() Cell {
	if e.step%2 == 0 {
		return X
	}
	return O
}

// Outcome evaluates the displayed snapshot.
func (e *Engine) Outcome() Outcome { return ComputeOutcome(e.CurrentBoard()) }

// CanMove reports whether ApplyMove(idx) would change the game.
func (e *Engine) CanMove(idx int) bool {
	if idx < 0 || idx >= len(Board{}) {
		return false
	}
	b := e.CurrentBoard()
	return b[idx] == Empty && !ComputeOutcome(b).Terminal()
}

// ApplyMove places the next symbol at idx. Illegal moves are ignored:
// out of range indices, occupied cells and moves after the game ended.
// Snapshots after the current step are discarded before the new one is appended.
func (e *Engine) ApplyMove(idx int) {
	if !e.CanMove(idx) {
		return
	}
	next := e.CurrentBoard()
	next[idx] = e.Next()
	e.history = append(e.history[:e.step+1], next)
	e.step++
}

// Reset discards the history and starts over on an empty board.
func (e *Engine) Reset() {
	e.history = []Board{{}}
	e.step = 0
}
