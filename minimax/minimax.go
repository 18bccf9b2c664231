// Package minimax is a plain minimax search for the small games in this
// repo. Gomoku itself uses the negamax package.
package minimax

import "math"

// Position is a two-player game where one side maximizes Score.
type Position interface {
	// Moves lists the legal moves. The order decides ties.
	Moves() []int
	Play(m int)
	Undo()
	Terminal() bool
	// Score is from the maximizing side's point of view.
	Score() int
	MaximizerToMove() bool
}

// Searcher holds search options and statistics.
type Searcher struct {
	AlphaBeta bool
	// PreferFast shrinks the magnitude of a decided score by the number of
	// plies it takes, so sooner wins and later losses come first.
	PreferFast bool

	nodes uint64
}

func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Best returns the best move for the side to move, searching depth plies.
// ok is false when there are no moves.
func (s *Searcher) Best(pos Position, depth int) (best int, score int, ok bool) {
	s.nodes = 0
	moves := pos.Moves()
	if len(moves) == 0 || pos.Terminal() {
		return 0, pos.Score(), false
	}
	maximizing := pos.MaximizerToMove()
	alpha, beta := math.MinInt, math.MaxInt
	for i, m := range moves {
		pos.Play(m)
		v := s.search(pos, depth-1, 1, alpha, beta)
		pos.Undo()
		if i == 0 || (maximizing && v > score) || (!maximizing && v < score) {
			best, score = m, v
		}
		if s.AlphaBeta {
			if maximizing {
				alpha = max(alpha, score)
			} else {
				beta = min(beta, score)
			}
		}
	}
	return best, score, true
}

func (s *Searcher) leaf(pos Position, ply int) int {
	v := pos.Score()
	if !s.PreferFast || !pos.Terminal() {
		return v
	}
	switch {
	case v > 0:
		return v - ply
	case v < 0:
		return v + ply
	}
	return v
}

func (s *Searcher) search(pos Position, depth, ply, alpha, beta int) int {
	s.nodes++
	if depth <= 0 || pos.Terminal() {
		return s.leaf(pos, ply)
	}
	moves := pos.Moves()
	if len(moves) == 0 {
		return s.leaf(pos, ply)
	}
	if pos.MaximizerToMove() {
		value := math.MinInt
		for _, m := range moves {
			pos.Play(m)
			value = max(value, s.search(pos, depth-1, ply+1, alpha, beta))
			pos.Undo()
			if s.AlphaBeta {
				alpha = max(alpha, value)
				if alpha >= beta {
					break
				}
			}
		}
		return value
	}
	value := math.MaxInt
	for _, m := range moves {
		pos.Play(m)
		value = min(value, s.search(pos, depth-1, ply+1, alpha, beta))
		pos.Undo()
		if s.AlphaBeta {
			beta = min(beta, value)
			if alpha >= beta {
				break
			}
		}
	}
	return value
}

// Best is a one-off search with alpha-beta and fast-win preference.
func Best(pos Position, depth int) (int, int, bool) {
	s := &Searcher{AlphaBeta: true, PreferFast: true}
	return s.Best(pos, depth)
}
