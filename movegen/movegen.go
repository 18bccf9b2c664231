// Package movegen picks the cells worth searching. Useful gomoku moves are
// local, so empty cells are ranked by how close they are to the nearest
// stone and only the closest few are kept.
package movegen

import (
	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
)

// MoveGenerator returns the moves to consider for a position, best first.
type MoveGenerator interface {
	CandidateMoves(b *board.Board, limit int) []move.Move
}

// ProximityGenerator ranks empty cells by their minimum Manhattan distance
// to any stone. Cells at the same distance keep row-major order. A
// ProximityGenerator reuses its scratch space and is not safe for
// concurrent use; give each goroutine its own.
type ProximityGenerator struct {
	dist   []int
	counts []int
}

func NewProximityGenerator() *ProximityGenerator {
	return &ProximityGenerator{}
}

// CandidateMoves returns at most limit empty cells, closest first. A limit
// of zero or less returns every empty cell. An empty board yields the
// centre cell and a full board yields no moves.
func (g *ProximityGenerator) CandidateMoves(b *board.Board, limit int) []move.Move {
	n := b.Dim()
	if b.Full() {
		return nil
	}
	if b.IsEmpty() {
		return []move.Move{move.New(n/2, n/2)}
	}
	g.distances(b)

	// Counting sort on distance keeps row-major order within a distance.
	maxDist := 2 * (n - 1)
	if cap(g.counts) < maxDist+2 {
		g.counts = make([]int, maxDist+2)
	}
	counts := g.counts[:maxDist+2]
	clear(counts)
	cells := b.Cells()
	empties := 0
	for i, c := range cells {
		if c == board.Empty {
			counts[g.dist[i]+1]++
			empties++
		}
	}
	for d := 1; d < len(counts); d++ {
		counts[d] += counts[d-1]
	}
	moves := make([]move.Move, empties)
	for i, c := range cells {
		if c != board.Empty {
			continue
		}
		d := g.dist[i]
		moves[counts[d]] = move.New(i/n, i%n)
		counts[d]++
	}
	if limit > 0 && limit < len(moves) {
		moves = moves[:limit]
	}
	return moves
}

// Distance returns the minimum Manhattan distance from (row, col) to a
// stone, as of the last call to CandidateMoves.
func (g *ProximityGenerator) Distance(b *board.Board, row, col int) int {
	return g.dist[row*b.Dim()+col]
}

// distances fills g.dist with the L1 distance transform of the stones: one
// forward pass from the top-left and one backward pass from the
// bottom-right.
func (g *ProximityGenerator) distances(b *board.Board) {
	n := b.Dim()
	cells := b.Cells()
	if cap(g.dist) < len(cells) {
		g.dist = make([]int, len(cells))
	}
	g.dist = g.dist[:len(cells)]
	far := 2 * n
	for i, c := range cells {
		if c == board.Empty {
			g.dist[i] = far
		} else {
			g.dist[i] = 0
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			i := r*n + c
			if r > 0 && g.dist[i-n]+1 < g.dist[i] {
				g.dist[i] = g.dist[i-n] + 1
			}
			if c > 0 && g.dist[i-1]+1 < g.dist[i] {
				g.dist[i] = g.dist[i-1] + 1
			}
		}
	}
	for r := n - 1; r >= 0; r-- {
		for c := n - 1; c >= 0; c-- {
			i := r*n + c
			if r < n-1 && g.dist[i+n]+1 < g.dist[i] {
				g.dist[i] = g.dist[i+n] + 1
			}
			if c < n-1 && g.dist[i+1]+1 < g.dist[i] {
				g.dist[i] = g.dist[i+1] + 1
			}
		}
	}
}
