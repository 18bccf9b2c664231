package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
)

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15)

	b, err := board.FromRows([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"......ox.......",
		".......x.......",
		"......o........",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	is.NoErr(err)
	h := z.Hash(b, false)
	m := move.New(8, 8)
	// play and unplay a move. The final hash should be the same as the beginning hash.
	h1 := z.AddMove(h, m, board.Self)
	h2 := z.AddMove(h1, m, board.Self)
	is.Equal(h, h2)
	is.True(h1 != h2) // extremely unlikely to collide, but this is not technically always true.
}

func TestHashAfterMakingPlay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(8)

	b := board.NewBoard(8)
	b.Place(move.New(4, 4), board.Opponent)
	h := z.Hash(b, false)

	m1 := move.New(3, 3)
	h1 := z.AddMove(h, m1, board.Self)
	b.Place(m1, board.Self)
	is.Equal(h1, z.Hash(b, true))

	m2 := move.New(3, 4)
	h2 := z.AddMove(h1, m2, board.Opponent)
	b.Place(m2, board.Opponent)
	is.Equal(h2, z.Hash(b, false))

	// Unplay these moves in reverse order.
	h3 := z.AddMove(h2, m2, board.Opponent)
	is.Equal(h3, h1)
	h4 := z.AddMove(h3, m1, board.Self)
	is.Equal(h4, h)
}

func TestColorsHashDifferently(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15)
	is.Equal(z.BoardDim(), 15)
	b := board.NewBoard(15)
	is.Equal(z.Hash(b, false), uint64(0))
	h := z.Hash(b, false)
	is.True(z.AddMove(h, move.New(7, 7), board.Self) != z.AddMove(h, move.New(7, 7), board.Opponent))
}
