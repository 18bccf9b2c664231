// Package uttt is ultimate tic-tac-toe: nine 3x3 boards where the cell
// you play in picks the board your opponent must play in next.
package uttt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/gobang/minimax"
	"github.com/domino14/gobang/tictactoe"
)

type Player = tictactoe.Player

const (
	None  = tictactoe.None
	Human = tictactoe.Human
	AI    = tictactoe.AI
)

// SubState is the result of one small board.
type SubState int

const (
	Open SubState = iota
	WonByHuman
	WonByAI
	Tied
)

const (
	// AnyBoard means the side to move may pick any open board.
	AnyBoard = -1

	WinScore    = 1000
	SubWinScore = 10
	full        = 0b111111111
)

var ErrIllegalMove = errors.New("illegal move")

var winningLines = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

type undoState struct {
	move     int
	next     int
	subState SubState
}

// Position holds two bitboards per small board. A move is
// sub*9 + cell, both 0-8 in row-major order.
type Position struct {
	bitboards [2][9]uint16
	subs      [9]SubState
	next      int
	turn      Player
	history   []undoState
}

func NewPosition(first Player) *Position {
	if first != Human && first != AI {
		first = Human
	}
	return &Position{next: AnyBoard, turn: first}
}

// MoveFromGrid converts 0-8 row and column on the full 9x9 grid.
func MoveFromGrid(row, col int) (sub, cell int) {
	return (row/3)*3 + col/3, (row%3)*3 + col%3
}

func pidx(p Player) int {
	return int(p) - 1
}

func lineWinner(human, ai uint16) SubState {
	for _, line := range winningLines {
		if human&line == line {
			return WonByHuman
		}
		if ai&line == line {
			return WonByAI
		}
	}
	if human|ai == full {
		return Tied
	}
	return Open
}

func (p *Position) Turn() Player {
	return p.turn
}

// NextBoard is the board the side to move must play in, or AnyBoard.
func (p *Position) NextBoard() int {
	return p.next
}

func (p *Position) SubState(sub int) SubState {
	return p.subs[sub]
}

func (p *Position) At(sub, cell int) Player {
	switch {
	case p.bitboards[pidx(Human)][sub]&(1<<cell) != 0:
		return Human
	case p.bitboards[pidx(AI)][sub]&(1<<cell) != 0:
		return AI
	}
	return None
}

func (p *Position) bigBoards() (human, ai uint16) {
	for i, s := range p.subs {
		switch s {
		case WonByHuman:
			human |= 1 << i
		case WonByAI:
			ai |= 1 << i
		}
	}
	return human, ai
}

func (p *Position) Winner() Player {
	human, ai := p.bigBoards()
	switch lineWinner(human, ai) {
	case WonByHuman:
		return Human
	case WonByAI:
		return AI
	}
	return None
}

func (p *Position) Terminal() bool {
	if p.Winner() != None {
		return true
	}
	for _, s := range p.subs {
		if s == Open {
			return false
		}
	}
	return true
}

func (p *Position) appendOpenCells(moves []int, sub int) []int {
	empty := ^(p.bitboards[0][sub] | p.bitboards[1][sub]) & full
	for cell := 0; cell < 9; cell++ {
		if empty&(1<<cell) != 0 {
			moves = append(moves, sub*9+cell)
		}
	}
	return moves
}

func (p *Position) Moves() []int {
	if p.Terminal() {
		return nil
	}
	if p.next != AnyBoard {
		return p.appendOpenCells(nil, p.next)
	}
	var moves []int
	for sub, s := range p.subs {
		if s == Open {
			moves = p.appendOpenCells(moves, sub)
		}
	}
	return moves
}

// Play makes a move for the side to move without checking legality.
func (p *Position) Play(m int) {
	sub, cell := m/9, m%9
	p.history = append(p.history, undoState{move: m, next: p.next, subState: p.subs[sub]})
	p.bitboards[pidx(p.turn)][sub] |= 1 << cell
	p.subs[sub] = lineWinner(p.bitboards[pidx(Human)][sub], p.bitboards[pidx(AI)][sub])
	p.next = cell
	if p.subs[cell] != Open {
		p.next = AnyBoard
	}
	p.turn = p.turn.Other()
}

func (p *Position) Undo() {
	if len(p.history) == 0 {
		return
	}
	u := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.turn = p.turn.Other()
	sub, cell := u.move/9, u.move%9
	p.bitboards[pidx(p.turn)][sub] &^= 1 << cell
	p.subs[sub] = u.subState
	p.next = u.next
}

// MakeMove checks and plays a move for the side to move.
func (p *Position) MakeMove(sub, cell int) error {
	if sub < 0 || sub > 8 || cell < 0 || cell > 8 {
		return fmt.Errorf("%w: (%d, %d) out of range", ErrIllegalMove, sub, cell)
	}
	if p.Terminal() {
		return fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if p.next != AnyBoard && sub != p.next {
		return fmt.Errorf("%w: must play in board %d", ErrIllegalMove, p.next)
	}
	if p.subs[sub] != Open {
		return fmt.Errorf("%w: board %d is decided", ErrIllegalMove, sub)
	}
	if p.At(sub, cell) != None {
		return fmt.Errorf("%w: (%d, %d) is taken", ErrIllegalMove, sub, cell)
	}
	p.Play(sub*9 + cell)
	return nil
}

// Score counts won small boards, or WinScore for a finished game. It is
// from the AI's point of view.
func (p *Position) Score() int {
	switch p.Winner() {
	case AI:
		return WinScore
	case Human:
		return -WinScore
	}
	score := 0
	for _, s := range p.subs {
		switch s {
		case WonByAI:
			score += SubWinScore
		case WonByHuman:
			score -= SubWinScore
		}
	}
	return score
}

func (p *Position) MaximizerToMove() bool {
	return p.turn == AI
}

// BestMove runs a depth-limited search for the side to move.
func (p *Position) BestMove(depth int) (sub, cell int, err error) {
	m, _, ok := minimax.Best(p, depth)
	if !ok {
		return -1, -1, fmt.Errorf("%w: no moves left", ErrIllegalMove)
	}
	return m / 9, m % 9, nil
}

// String draws the 9x9 grid with the small boards separated.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 9; row++ {
		if row > 0 && row%3 == 0 {
			sb.WriteString("------+-------+------\n")
		}
		for col := 0; col < 9; col++ {
			if col > 0 && col%3 == 0 {
				sb.WriteString("| ")
			}
			sub, cell := MoveFromGrid(row, col)
			s := p.At(sub, cell).String()
			if s == " " {
				s = "."
			}
			sb.WriteString(s)
			if col < 8 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
