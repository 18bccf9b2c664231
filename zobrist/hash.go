package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a gomoku position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	theirTurn uint64

	// posTable holds one key per cell per stone color.
	posTable [][2]uint64

	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := 0; i < boardDim*boardDim; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func stoneIdx(c board.Cell) int {
	if c == board.Opponent {
		return 1
	}
	return 0
}

// Hash computes the key of a whole board. theirTurn is set when the
// Opponent is to move.
func (z *Zobrist) Hash(b *board.Board, theirTurn bool) uint64 {
	key := uint64(0)
	for i, c := range b.Cells() {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][stoneIdx(c)]
	}
	if theirTurn {
		key ^= z.theirTurn
	}
	return key
}

// AddMove returns the key after a stone of color c is placed at m and the
// turn passes. Calling it again with the same arguments undoes it.
func (z *Zobrist) AddMove(key uint64, m move.Move, c board.Cell) uint64 {
	key ^= z.posTable[m.Row*z.boardDim+m.Col][stoneIdx(c)]
	key ^= z.theirTurn
	return key
}
