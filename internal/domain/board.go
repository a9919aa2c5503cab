package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns "X", "O" or "" for an empty cell.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major: index = row*3 + col.
type Board [9]Cell

// Full reports whether no cell is empty.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Line is a winning triple of board indices.
type Line [3]int

// Lines lists the winning triples in evaluation order:
// rows top-to-bottom, columns left-to-right, then both diagonals.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Contains reports whether idx is one of the line's cells.
func (l Line) Contains(idx int) bool {
	return l[0] == idx || l[1] == idx || l[2] == idx
}

// Status is the coarse state of a game.
type Status uint8

const (
	InProgress Status = iota
	Win
	Tie
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "in_progress"
	}
}

// Outcome is derived from a board. Winner and Line are set only when Status is Win.
type Outcome struct {
	Status Status
	Winner Cell
	Line   Line
}

// Terminal reports whether no more moves can be made.
func (o Outcome) Terminal() bool { return o.Status != InProgress }

// ComputeOutcome returns the first completed line in Lines order as a win,
// a tie when the board is full, and InProgress otherwise.
func ComputeOutcome(b Board) Outcome {
	for _, ln := range Lines {
		c := b[ln[0]]
		if c != Empty && c == b[ln[1]] && c == b[ln[2]] {
			return Outcome{Status: Win, Winner: c, Line: ln}
		}
	}
	if b.Full() {
		return Outcome{Status: Tie}
	}
	return Outcome{Status: InProgress}
}
