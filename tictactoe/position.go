// Package tictactoe is 3x3 tic-tac-toe against an exhaustive minimax
// opponent.
package tictactoe

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/domino14/gobang/minimax"
)

type Player int

const (
	None Player = iota
	Human
	AI
)

func (p Player) String() string {
	switch p {
	case Human:
		return "X"
	case AI:
		return "O"
	}
	return " "
}

func (p Player) Other() Player {
	switch p {
	case Human:
		return AI
	case AI:
		return Human
	}
	return None
}

const (
	WinScore  = 10
	LossScore = -10
	full      = 0b111111111
)

var ErrIllegalMove = errors.New("illegal move")

// rows, columns and diagonals as bitboards
var winningLines = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

// Position uses one 9-bit bitboard per player; bit i is cell i, row-major.
type Position struct {
	bitboards [2]uint16
	turn      Player
	history   []int
}

func NewPosition(first Player) *Position {
	if first != Human && first != AI {
		first = Human
	}
	return &Position{turn: first, history: make([]int, 0, 9)}
}

func idx(p Player) int {
	return int(p) - 1
}

func (p *Position) Turn() Player {
	return p.turn
}

func (p *Position) At(cell int) Player {
	switch {
	case p.bitboards[idx(Human)]&(1<<cell) != 0:
		return Human
	case p.bitboards[idx(AI)]&(1<<cell) != 0:
		return AI
	}
	return None
}

func (p *Position) occupied() uint16 {
	return p.bitboards[0] | p.bitboards[1]
}

func (p *Position) Moves() []int {
	if p.Winner() != None {
		return nil
	}
	empty := ^p.occupied() & full
	moves := make([]int, 0, bits.OnesCount16(empty))
	for empty != 0 {
		moves = append(moves, bits.TrailingZeros16(empty))
		empty &= empty - 1
	}
	return moves
}

// Play puts a stone for the side to move without checking legality.
func (p *Position) Play(m int) {
	p.bitboards[idx(p.turn)] |= 1 << m
	p.history = append(p.history, m)
	p.turn = p.turn.Other()
}

func (p *Position) Undo() {
	if len(p.history) == 0 {
		return
	}
	m := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.turn = p.turn.Other()
	p.bitboards[idx(p.turn)] &^= 1 << m
}

// MakeMove checks and plays a move for the side to move.
func (p *Position) MakeMove(cell int) error {
	if cell < 0 || cell > 8 {
		return fmt.Errorf("%w: cell %d out of range", ErrIllegalMove, cell)
	}
	if p.Terminal() {
		return fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if p.occupied()&(1<<cell) != 0 {
		return fmt.Errorf("%w: cell %d is taken", ErrIllegalMove, cell)
	}
	p.Play(cell)
	return nil
}

func (p *Position) Winner() Player {
	for _, line := range winningLines {
		if p.bitboards[idx(Human)]&line == line {
			return Human
		}
		if p.bitboards[idx(AI)]&line == line {
			return AI
		}
	}
	return None
}

func (p *Position) Terminal() bool {
	return p.Winner() != None || p.occupied() == full
}

// Score is +10 for an AI win, -10 for a human win and 0 otherwise.
func (p *Position) Score() int {
	switch p.Winner() {
	case AI:
		return WinScore
	case Human:
		return LossScore
	}
	return 0
}

func (p *Position) MaximizerToMove() bool {
	return p.turn == AI
}

// BestMove searches the whole remaining game for the side to move.
func (p *Position) BestMove() (int, error) {
	m, _, ok := minimax.Best(p, 9)
	if !ok {
		return -1, fmt.Errorf("%w: no moves left", ErrIllegalMove)
	}
	return m, nil
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			cells[c] = p.At(r*3 + c).String()
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if r < 2 {
			sb.WriteString("-----------\n")
		}
	}
	return sb.String()
}
