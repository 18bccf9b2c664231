package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/gobang/move"
)

// A Cell is the state of a single point on the board.
type Cell uint8

const (
	Empty Cell = iota
	Self
	Opponent
)

// MaxDim is the biggest board we can display with lettered columns.
const MaxDim = 25

var ErrInvalidMove = errors.New("invalid move")

// Other returns the opposing stone. Empty has no opposite.
func (c Cell) Other() Cell {
	switch c {
	case Self:
		return Opponent
	case Opponent:
		return Self
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case Self:
		return "x"
	case Opponent:
		return "o"
	}
	return "."
}

// Board is an N×N gomoku grid stored in row-major order.
type Board struct {
	dim   int
	cells []Cell
	// stones is the number of non-empty cells.
	stones int
}

// NewBoard makes an empty board of the given dimension.
func NewBoard(dim int) *Board {
	if dim < 1 || dim > MaxDim {
		panic(fmt.Sprintf("board dimension %d out of range", dim))
	}
	return &Board{dim: dim, cells: make([]Cell, dim*dim)}
}

func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.dim && col >= 0 && col < b.dim
}

// At returns the cell at (row, col). The coordinates must be in bounds.
func (b *Board) At(row, col int) Cell {
	return b.cells[row*b.dim+col]
}

// Cells exposes the row-major cell slice. Callers must not modify it.
func (b *Board) Cells() []Cell {
	return b.cells
}

// Place puts a stone of color c at m. It returns false, without touching the
// board, if m is out of bounds or already occupied.
func (b *Board) Place(m move.Move, c Cell) bool {
	if c == Empty || !b.InBounds(m.Row, m.Col) {
		return false
	}
	idx := m.Row*b.dim + m.Col
	if b.cells[idx] != Empty {
		return false
	}
	b.cells[idx] = c
	b.stones++
	return true
}

// PlaceOrErr is Place for drivers that want an error to show the user.
func (b *Board) PlaceOrErr(m move.Move, c Cell) error {
	if !b.InBounds(m.Row, m.Col) {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidMove, m.Coords())
	}
	if !b.Place(m, c) {
		return fmt.Errorf("%w: %v is already occupied", ErrInvalidMove, m.Coords())
	}
	return nil
}

// Remove resets the cell at m to empty.
func (b *Board) Remove(m move.Move) {
	if !b.InBounds(m.Row, m.Col) {
		return
	}
	idx := m.Row*b.dim + m.Col
	if b.cells[idx] != Empty {
		b.cells[idx] = Empty
		b.stones--
	}
}

func (b *Board) StoneCount() int {
	return b.stones
}

func (b *Board) IsEmpty() bool {
	return b.stones == 0
}

func (b *Board) Full() bool {
	return b.stones == len(b.cells)
}

// Clear removes every stone.
func (b *Board) Clear() {
	clear(b.cells)
	b.stones = 0
}

func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{dim: b.dim, cells: cells, stones: b.stones}
}

// CopyFrom copies the state of other into b. Both boards must have the
// same dimension.
func (b *Board) CopyFrom(other *Board) {
	if b.dim != other.dim {
		panic("cannot copy between boards of different sizes")
	}
	copy(b.cells, other.cells)
	b.stones = other.stones
}

func (b *Board) Equals(other *Board) bool {
	if b.dim != other.dim || b.stones != other.stones {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Swapped returns a copy of the board with every Self stone turned into an
// Opponent stone and vice versa.
func (b *Board) Swapped() *Board {
	c := b.Copy()
	for i := range c.cells {
		c.cells[i] = c.cells[i].Other()
	}
	return c
}

// FromRows builds a square board from its text rows: `.` is empty, `x` is
// a Self stone and `o` an Opponent stone. Spaces are ignored.
func FromRows(rows []string) (*Board, error) {
	b := NewBoard(len(rows))
	for r, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != b.dim {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), b.dim)
		}
		for c, ch := range row {
			switch ch {
			case '.':
			case 'x', 'X':
				b.Place(move.New(r, c), Self)
			case 'o', 'O':
				b.Place(move.New(r, c), Opponent)
			default:
				return nil, fmt.Errorf("unrecognized cell %q at row %d", ch, r)
			}
		}
	}
	return b, nil
}
