package pattern

import (
	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/rules"
)

const half = WindowSize / 2

// Evaluator scores whole boards with a fixed table. It is safe for
// concurrent use.
type Evaluator struct {
	table *Table
	codes []int32
}

// NewEvaluator returns an evaluator for t. The first evaluator built for a
// table pays for precomputing the score of every window.
func NewEvaluator(t *Table) *Evaluator {
	return &Evaluator{table: t, codes: t.lookup()}
}

func (e *Evaluator) Table() *Table {
	return e.table
}

// ScoreWindow is the precomputed equivalent of the package-level
// ScoreWindow.
func (e *Evaluator) ScoreWindow(w Window) int {
	return int(e.codes[encode(w)])
}

// EvaluateBoard scores the board from Self's point of view: the sum over
// every cell and direction of the window centred there. Shapes made of Self
// stones count positive and Opponent shapes count negative.
func (e *Evaluator) EvaluateBoard(b *board.Board) int {
	n := b.Dim()
	total := 0
	for d := 0; d < len(rules.Directions); d++ {
		dr, dc := rules.Directions[d][0], rules.Directions[d][1]
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				// Only walk from the first cell of each line.
				if b.InBounds(r-dr, c-dc) {
					continue
				}
				total += e.scoreLine(b, r, c, dr, dc)
			}
		}
	}
	return total
}

// scoreLine adds up the windows centred on every cell of the line that
// starts at (r, c). The window code is slid one cell at a time.
func (e *Evaluator) scoreLine(b *board.Board, r, c, dr, dc int) int {
	n := b.Dim()
	cells := b.Cells()
	step := dr*n + dc
	length := 0
	for rr, cc := r, c; rr >= 0 && rr < n && cc >= 0 && cc < n; rr, cc = rr+dr, cc+dc {
		length++
	}
	start := r*n + c

	code := uint32(0)
	for i := -half; i <= half; i++ {
		sym := uint32(Blocked)
		if i >= 0 && i < length {
			sym = uint32(cells[start+i*step])
		}
		code = code<<2 | sym
	}
	sum := int(e.codes[code])
	for i := 1; i < length; i++ {
		sym := uint32(Blocked)
		if next := i + half; next < length {
			sym = uint32(cells[start+next*step])
		}
		code = (code<<2)&codeMask | sym
		sum += int(e.codes[code])
	}
	return sum
}

// WindowAt extracts the window centred on (row, col) along (dr, dc).
func WindowAt(b *board.Board, row, col, dr, dc int) Window {
	var w Window
	for k := -half; k <= half; k++ {
		r, c := row+k*dr, col+k*dc
		if b.InBounds(r, c) {
			w[k+half] = b.At(r, c)
		} else {
			w[k+half] = Blocked
		}
	}
	return w
}
