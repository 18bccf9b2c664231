package tictactoe

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gobang/minimax"
)

func play(is *is.I, p *Position, cells ...int) {
	for _, c := range cells {
		is.NoErr(p.MakeMove(c))
	}
}

func TestWinnerAndMoves(t *testing.T) {
	is := is.New(t)
	p := NewPosition(Human)
	is.Equal(len(p.Moves()), 9)
	play(is, p, 0, 3, 1, 4, 2)
	is.Equal(p.Winner(), Human)
	is.True(p.Terminal())
	is.Equal(p.Score(), LossScore)
	is.Equal(len(p.Moves()), 0)
	is.True(errors.Is(p.MakeMove(8), ErrIllegalMove))

	p.Undo()
	is.Equal(p.Winner(), None)
	is.Equal(p.Turn(), Human)
	is.Equal(p.Moves(), []int{2, 5, 6, 7, 8})
}

func TestIllegalMoves(t *testing.T) {
	is := is.New(t)
	p := NewPosition(AI)
	is.True(errors.Is(p.MakeMove(9), ErrIllegalMove))
	is.NoErr(p.MakeMove(4))
	is.True(errors.Is(p.MakeMove(4), ErrIllegalMove))
	is.Equal(p.At(4), AI)
	is.Equal(p.Turn(), Human)
}

func TestTakesImmediateWin(t *testing.T) {
	is := is.New(t)
	// O O .
	// X X .
	// X . .
	p := NewPosition(AI)
	play(is, p, 0, 3, 1, 4)
	is.NoErr(p.MakeMove(8))
	is.NoErr(p.MakeMove(6))
	// AI to move with both sides threatening; winning beats blocking.
	m, err := p.BestMove()
	is.NoErr(err)
	is.Equal(m, 2)
}

func TestBlocks(t *testing.T) {
	is := is.New(t)
	p := NewPosition(Human)
	play(is, p, 0, 4, 1)
	m, err := p.BestMove()
	is.NoErr(err)
	is.Equal(m, 2)
}

func TestEmptyBoardIsADraw(t *testing.T) {
	is := is.New(t)
	s := &minimax.Searcher{}
	_, score, ok := s.Best(NewPosition(AI), 9)
	is.True(ok)
	is.Equal(score, 0)
}

func TestAlphaBetaAgrees(t *testing.T) {
	is := is.New(t)
	p := NewPosition(Human)
	play(is, p, 4)
	plain := &minimax.Searcher{}
	pruned := &minimax.Searcher{AlphaBeta: true}
	m1, s1, _ := plain.Best(p, 9)
	m2, s2, _ := pruned.Best(p, 9)
	is.Equal(m1, m2)
	is.Equal(s1, s2)
	is.True(pruned.Nodes() < plain.Nodes())
}

// neverLoses tries every human reply and lets the AI answer each one.
func neverLoses(t *testing.T, p *Position) {
	if p.Terminal() {
		if p.Winner() == Human {
			t.Fatalf("AI lost:\n%s", p)
		}
		return
	}
	if p.Turn() == AI {
		m, err := p.BestMove()
		if err != nil {
			t.Fatal(err)
		}
		p.Play(m)
		neverLoses(t, p)
		p.Undo()
		return
	}
	for _, m := range p.Moves() {
		p.Play(m)
		neverLoses(t, p)
		p.Undo()
	}
}

func TestNeverLoses(t *testing.T) {
	neverLoses(t, NewPosition(Human))
	neverLoses(t, NewPosition(AI))
}

func TestString(t *testing.T) {
	is := is.New(t)
	p := NewPosition(Human)
	play(is, p, 0, 4)
	is.Equal(p.String(), " X |   |  \n-----------\n   | O |  \n-----------\n   |   |  \n")
}
