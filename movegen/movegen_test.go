package movegen

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func bruteDistance(b *board.Board, row, col int) int {
	best := -1
	for r := 0; r < b.Dim(); r++ {
		for c := 0; c < b.Dim(); c++ {
			if b.At(r, c) == board.Empty {
				continue
			}
			d := abs(r-row) + abs(c-col)
			if best == -1 || d < best {
				best = d
			}
		}
	}
	return best
}

func TestEmptyBoardGivesCentre(t *testing.T) {
	is := is.New(t)
	g := NewProximityGenerator()
	is.Equal(g.CandidateMoves(board.NewBoard(15), 10), []move.Move{move.New(7, 7)})
	is.Equal(g.CandidateMoves(board.NewBoard(8), 20), []move.Move{move.New(4, 4)})
}

func TestFullBoardGivesNothing(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows([]string{"xo", "ox"})
	is.NoErr(err)
	is.Equal(len(NewProximityGenerator().CandidateMoves(b, 10)), 0)
}

func TestOrdering(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows([]string{
		".....",
		".....",
		"..x..",
		".....",
		".....",
	})
	is.NoErr(err)
	g := NewProximityGenerator()
	moves := g.CandidateMoves(b, 0)
	is.Equal(len(moves), 24)
	// distance 1, row-major
	is.Equal(moves[:4], []move.Move{{Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 3}, {Row: 3, Col: 2}})
	// then distance 2
	is.Equal(moves[4:12], []move.Move{
		{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 3}, {Row: 2, Col: 0}, {Row: 2, Col: 4}, {Row: 3, Col: 1}, {Row: 3, Col: 3}, {Row: 4, Col: 2}})
	is.Equal(moves[23], move.New(4, 4))

	limited := g.CandidateMoves(b, 6)
	is.Equal(limited, moves[:6])
}

func TestLimitLargerThanEmpties(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows([]string{
		"xo.",
		"oxo",
		"x.x",
	})
	is.NoErr(err)
	moves := NewProximityGenerator().CandidateMoves(b, 10)
	is.Equal(moves, []move.Move{{Row: 0, Col: 2}, {Row: 2, Col: 1}})
}

func TestOpenFourCandidates(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(8)
	for c := 3; c <= 6; c++ {
		b.Place(move.New(3, c), board.Opponent)
	}
	moves := NewProximityGenerator().CandidateMoves(b, 20)
	is.Equal(len(moves), 20)
	is.Equal(moves[:10], []move.Move{
		{Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 2, Col: 5}, {Row: 2, Col: 6}, {Row: 3, Col: 2}, {Row: 3, Col: 7}, {Row: 4, Col: 3}, {Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 4, Col: 6}})
}

func TestDistancesMatchBruteForce(t *testing.T) {
	g := NewProximityGenerator()
	for i := 0; i < 30; i++ {
		dim := 1 + frand.Intn(15)
		b := board.NewBoard(dim)
		for j := 0; j < 1+frand.Intn(6); j++ {
			b.Place(move.New(frand.Intn(dim), frand.Intn(dim)), board.Self)
		}
		moves := g.CandidateMoves(b, 0)
		last := 0
		for _, m := range moves {
			d := bruteDistance(b, m.Row, m.Col)
			assert.Equal(t, d, g.Distance(b, m.Row, m.Col))
			assert.GreaterOrEqual(t, d, last)
			last = d
		}
		assert.Equal(t, dim*dim-b.StoneCount(), len(moves))
	}
}
