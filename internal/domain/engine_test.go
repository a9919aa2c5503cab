package domain

import "testing"

// helper to apply a sequence of moves
func playMoves(t *testing.T, e *Engine, moves ...int) {
	t.Helper()
	for i, m := range moves {
		before := e.Len()
		e.ApplyMove(m)
		if e.Len() != before+1 {
			t.Fatalf("move %d (index %d) was not applied", i, m)
		}
	}
}

func assertUnchanged(t *testing.T, e *Engine, history []Board, step int) {
	t.Helper()
	if e.Step() != step {
		t.Fatalf("expected step %d, got %d", step, e.Step())
	}
	got := e.History()
	if len(got) != len(history) {
		t.Fatalf("expected %d snapshots, got %d", len(history), len(got))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Fatalf("snapshot %d changed: %v -> %v", i, history[i], got[i])
		}
	}
}

func TestNewEngineInitialState(t *testing.T) {
	e := New()
	if e.Step() != 0 || e.Len() != 1 {
		t.Fatalf("expected single empty snapshot, got step=%d len=%d", e.Step(), e.Len())
	}
	if e.CurrentBoard() != (Board{}) {
		t.Fatalf("expected empty board, got %v", e.CurrentBoard())
	}
	if e.Next() != X {
		t.Fatalf("expected X to start, got %v", e.Next())
	}
	if e.Outcome().Status != InProgress {
		t.Fatalf("expected game in progress")
	}
}

func TestSnapshotsDifferByOneCell(t *testing.T) {
	e := New()
	playMoves(t, e, 4, 0, 8, 2, 6, 3, 7)
	h := e.History()
	for k := 1; k < len(h); k++ {
		diff := 0
		for i := range h[k] {
			if h[k][i] == h[k-1][i] {
				continue
			}
			diff++
			if h[k-1][i] != Empty || h[k][i] == Empty {
				t.Fatalf("snapshot %d: cell %d went %v -> %v", k, i, h[k-1][i], h[k][i])
			}
		}
		if diff != 1 {
			t.Fatalf("snapshot %d differs from its predecessor in %d cells", k, diff)
		}
	}
}

func TestTurnAlternation(t *testing.T) {
	e := New()
	moves := []int{4, 0, 8, 2, 1, 7}
	for k, m := range moves {
		want := X
		if k%2 == 1 {
			want = O
		}
		if e.Next() != want {
			t.Fatalf("move %d: expected %v to move, got %v", k, want, e.Next())
		}
		e.ApplyMove(m)
		if got := e.CurrentBoard()[m]; got != want {
			t.Fatalf("move %d: expected %v at %d, got %v", k, want, m, got)
		}
	}
}

func TestTopRowWinScenario(t *testing.T) {
	e := New()
	playMoves(t, e, 0, 3, 1, 4, 2)
	o := e.Outcome()
	if o.Status != Win || o.Winner != X || o.Line != (Line{0, 1, 2}) {
		t.Fatalf("expected X to win on top row, got %+v", o)
	}
}

func TestTieScenario(t *testing.T) {
	e := New()
	playMoves(t, e, 0, 1, 2, 4, 3, 5, 7, 6, 8)
	if o := e.Outcome(); o.Status != Tie {
		t.Fatalf("expected tie, got %+v", o)
	}
	if e.Step() != 9 || e.Len() != 10 {
		t.Fatalf("expected 9 moves, got step=%d len=%d", e.Step(), e.Len())
	}
}

func TestMoveOnOccupiedCellIsIgnored(t *testing.T) {
	e := New()
	e.ApplyMove(0)
	history, step := e.History(), e.Step()

	e.ApplyMove(0)

	assertUnchanged(t, e, history, step)
	if e.CurrentBoard()[0] != X {
		t.Fatalf("expected X to keep cell 0")
	}
	if e.Next() != O {
		t.Fatalf("expected O to move next, got %v", e.Next())
	}
	if e.Outcome().Status != InProgress {
		t.Fatalf("expected game still in progress")
	}
}

func TestMoveAfterGameOverIsIgnored(t *testing.T) {
	e := New()
	playMoves(t, e, 0, 3, 1, 4, 2)
	history, step := e.History(), e.Step()

	e.ApplyMove(8)

	assertUnchanged(t, e, history, step)
	if e.CanMove(8) {
		t.Fatalf("expected no legal moves after a win")
	}
}

func TestMoveOutOfRangeIsIgnored(t *testing.T) {
	e := New()
	history, step := e.History(), e.Step()
	for _, idx := range []int{-1, 9, 42} {
		e.ApplyMove(idx)
		if e.CanMove(idx) {
			t.Fatalf("CanMove(%d) should be false", idx)
		}
	}
	assertUnchanged(t, e, history, step)
}

func TestResetRestoresInitialState(t *testing.T) {
	states := map[string][]int{
		"fresh":       nil,
		"in progress": {4, 0},
		"won":         {0, 3, 1, 4, 2},
		"tied":        {0, 1, 2, 4, 3, 5, 7, 6, 8},
	}
	for name, moves := range states {
		e := New()
		playMoves(t, e, moves...)
		e.Reset()
		if e.Len() != 1 || e.Step() != 0 {
			t.Fatalf("%s: expected len=1 step=0, got len=%d step=%d", name, e.Len(), e.Step())
		}
		if e.CurrentBoard() != (Board{}) || e.Next() != X || e.Outcome().Status != InProgress {
			t.Fatalf("%s: expected fresh game after reset", name)
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	e := New()
	h := e.History()
	h[0][0] = O
	if e.CurrentBoard()[0] != Empty {
		t.Fatalf("mutating History() result must not affect the engine")
	}
}

func TestTerminalStateLeftOnlyByReset(t *testing.T) {
	e := New()
	playMoves(t, e, 0, 3, 1, 4, 2)
	history, step := e.History(), e.Step()

	for idx := 0; idx < 9; idx++ {
		e.ApplyMove(idx)
	}

	assertUnchanged(t, e, history, step)
	if o := e.Outcome(); o.Status != Win || o.Winner != X {
		t.Fatalf("expected win to stand until reset, got %+v", o)
	}
	e.Reset()
	if e.Outcome().Terminal() || !e.CanMove(8) {
		t.Fatalf("expected reset to reopen the game")
	}
}
