package negamax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/movegen"
	"github.com/domino14/gobang/rules"
	"github.com/domino14/gobang/zobrist"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

// HugeNumber bounds every score. Evaluations stay far below it.
const HugeNumber = math.MaxInt32

const DefaultCandidateLimit = 10

var (
	ErrNoMove       = errors.New("no move available")
	ErrInvalidDepth = errors.New("search depth must be at least 1")
	ErrInvalidSide  = errors.New("side to move must be self or opponent")
)

// Evaluator scores a board from Self's point of view.
type Evaluator interface {
	EvaluateBoard(b *board.Board) int
}

// DeepeningPolicy decides which iteration's answer Solve returns.
type DeepeningPolicy int

const (
	// TrustDeepest returns the best move of the deepest completed iteration.
	TrustDeepest DeepeningPolicy = iota
	// AccumulateBest keeps the best score seen over all iterations; a
	// shallow result survives unless a deeper one strictly beats it.
	AccumulateBest
)

func (p DeepeningPolicy) String() string {
	switch p {
	case TrustDeepest:
		return "deepest"
	case AccumulateBest:
		return "accumulate"
	}
	return "unknown"
}

func ParseDeepeningPolicy(s string) (DeepeningPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deepest", "":
		return TrustDeepest, nil
	case "accumulate":
		return AccumulateBest, nil
	}
	return TrustDeepest, fmt.Errorf("unknown deepening policy %q", s)
}

// Result is the outcome of a Solve.
type Result struct {
	Move move.Move
	// Score is from the point of view of the side that moved.
	Score int
	// Depth is the iteration that produced Move.
	Depth   int
	PV      PVLine
	Nodes   uint64
	Elapsed time.Duration
}

type Solver struct {
	zobrist   *zobrist.Zobrist
	movegen   movegen.MoveGenerator
	evaluator Evaluator

	candidateLimit int
	policy         DeepeningPolicy
	// quickWinOptim: before searching, look for an empty cell that makes
	// five right away and play it.
	quickWinOptim   bool
	pruningDisabled bool

	evalCache *EvalCache
	nodes     atomic.Uint64

	principalVariation PVLine

	logStream io.Writer
}

// Init initializes the solver
func (s *Solver) Init(m movegen.MoveGenerator, ev Evaluator) error {
	if m == nil || ev == nil {
		return errors.New("solver needs a move generator and an evaluator")
	}
	s.zobrist = &zobrist.Zobrist{}
	s.movegen = m
	s.evaluator = ev
	s.candidateLimit = DefaultCandidateLimit
	s.policy = TrustDeepest
	s.quickWinOptim = true
	s.pruningDisabled = false
	return nil
}

func (s *Solver) ensureZobrist(dim int) {
	if s.zobrist.BoardDim() != dim {
		log.Debug().Int("dim", dim).Msg("creating-zobrist-hash")
		s.zobrist.Initialize(dim)
	}
}

func (s *Solver) evaluate(b *board.Board, key uint64) int {
	if s.evalCache != nil {
		if v, ok := s.evalCache.lookup(key); ok {
			return v
		}
		v := s.evaluator.EvaluateBoard(b)
		s.evalCache.store(key, v)
		return v
	}
	return s.evaluator.EvaluateBoard(b)
}

func stoneFor(sign int) board.Cell {
	if sign > 0 {
		return board.Self
	}
	return board.Opponent
}

func signFor(side board.Cell) int {
	if side == board.Opponent {
		return -1
	}
	return 1
}

// Negamax scores b for the side given by sign (+1 Self, -1 Opponent),
// searching depth plies with an (α, β) window. The board is restored
// before it returns. A negative depth is a programming error and panics.
func (s *Solver) Negamax(b *board.Board, depth, α, β, sign int) int {
	if depth < 0 {
		panic(fmt.Sprintf("negamax called with negative depth %d", depth))
	}
	if sign != 1 && sign != -1 {
		panic(fmt.Sprintf("negamax called with sign %d", sign))
	}
	s.ensureZobrist(b.Dim())
	key := s.zobrist.Hash(b, sign < 0)
	var pv PVLine
	// Without cancellation there is no error path.
	val, _ := s.negamax(context.Background(), b, key, depth, α, β, sign, &pv)
	return val
}

func (s *Solver) negamax(ctx context.Context, b *board.Board, nodeKey uint64, depth, α, β, sign int, pv *PVLine) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	s.nodes.Add(1)
	if depth == 0 || rules.Terminal(b) {
		return s.evaluate(b, nodeKey) * sign, nil
	}
	children := s.movegen.CandidateMoves(b, s.candidateLimit)
	if len(children) == 0 {
		// Full board: nothing left to play, score it as it stands.
		return s.evaluate(b, nodeKey) * sign, nil
	}
	stone := stoneFor(sign)
	childPV := PVLine{}
	bestValue := -HugeNumber
	for _, child := range children {
		b.Place(child, stone)
		childKey := s.zobrist.AddMove(nodeKey, child, stone)
		value, err := s.negamax(ctx, b, childKey, depth-1, -β, -α, -sign, &childPV)
		b.Remove(child)
		if err != nil {
			return 0, err
		}
		value = -value
		if value > bestValue {
			bestValue = value
			pv.Update(child, childPV, bestValue)
		}
		α = max(α, bestValue)
		if α >= β && !s.pruningDisabled {
			break // beta cut-off
		}
		childPV.Clear() // clear the child node's pv for the next child node
	}
	return bestValue, nil
}

// searchRoot scores every candidate at the given depth. Among equal scores
// the first candidate wins. α is raised at the root as well; later moves
// that cannot beat the best so far come back with bounds no higher than it,
// so the chosen move and its score match a full-width search.
func (s *Solver) searchRoot(ctx context.Context, b *board.Board, key uint64, cands []move.Move,
	depth, sign int, dl *DepthLog) (move.Move, int, PVLine, error) {

	stone := stoneFor(sign)
	α := -HugeNumber
	β := HugeNumber
	bestMove := move.None
	bestValue := -HugeNumber
	pv := PVLine{}
	childPV := PVLine{}
	for i, m := range cands {
		b.Place(m, stone)
		childKey := s.zobrist.AddMove(key, m, stone)
		value, err := s.negamax(ctx, b, childKey, depth-1, -β, -α, -sign, &childPV)
		b.Remove(m)
		if err != nil {
			return bestMove, bestValue, pv, err
		}
		value = -value
		if dl != nil {
			dl.Plays = append(dl.Plays, PlayLog{Move: m.Coords(), Score: value})
		}
		if i == 0 || value > bestValue {
			bestValue = value
			bestMove = m
			pv.Update(m, childPV, bestValue)
		}
		if !s.pruningDisabled {
			α = max(α, bestValue)
		}
		childPV.Clear()
	}
	return bestMove, bestValue, pv, nil
}

// findImmediateWin returns the first empty cell, in row-major order, that
// completes five for stone.
func findImmediateWin(b *board.Board, stone board.Cell) (move.Move, bool) {
	n := b.Dim()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m := move.New(r, c)
			if !b.Place(m, stone) {
				continue
			}
			won := rules.HasFiveInARow(b, stone)
			b.Remove(m)
			if won {
				return m, true
			}
		}
	}
	return move.None, false
}

// Solve picks a move for side by iterative deepening from depth 1 to
// maxDepth. The board is modified during the search and restored before
// Solve returns. If ctx is cancelled mid-search, the result of the last
// completed depth (possibly nil) is returned along with the context's error.
func (s *Solver) Solve(ctx context.Context, b *board.Board, side board.Cell, maxDepth int) (*Result, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	if side != board.Self && side != board.Opponent {
		return nil, ErrInvalidSide
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.Full() {
		return nil, ErrNoMove
	}
	tstart := time.Now()
	s.ensureZobrist(b.Dim())
	s.nodes.Store(0)
	if s.evalCache != nil {
		s.evalCache.Reset()
	}
	sign := signFor(side)
	key := s.zobrist.Hash(b, side == board.Opponent)
	log.Debug().Int("max-depth", maxDepth).Int("candidate-limit", s.candidateLimit).
		Str("policy", s.policy.String()).Str("side", side.String()).Msg("solve-config")

	if s.quickWinOptim {
		if m, ok := findImmediateWin(b, side); ok {
			b.Place(m, side)
			score := s.evaluator.EvaluateBoard(b) * sign
			b.Remove(m)
			log.Info().Str("move", m.Coords()).Int("score", score).Msg("quick-win")
			pv := PVLine{Moves: []move.Move{m}, score: score}
			s.principalVariation = pv
			return &Result{Move: m, Score: score, Depth: 1, PV: pv.Copy(), Nodes: 1,
				Elapsed: time.Since(tstart)}, nil
		}
	}

	cands := s.movegen.CandidateMoves(b, s.candidateLimit)
	if len(cands) == 0 {
		return nil, ErrNoMove
	}

	var result *Result
	for p := 1; p <= maxDepth; p++ {
		log.Debug().Int("plies", p).Msg("deepening-iteratively")
		var dl *DepthLog
		if s.logStream != nil {
			dl = &DepthLog{Depth: p}
		}
		m, val, pv, err := s.searchRoot(ctx, b, key, cands, p, sign, dl)
		if err != nil {
			log.Info().Err(err).Int("ply", p).Msg("search-interrupted")
			if result != nil {
				result.Nodes = s.nodes.Load()
				result.Elapsed = time.Since(tstart)
			}
			return result, err
		}
		log.Debug().Int("score", val).Int("ply", p).Str("pv", pv.NLBString()).Msg("best-val")
		if result == nil || s.policy == TrustDeepest || val > result.Score {
			result = &Result{Move: m, Score: val, Depth: p, PV: pv.Copy()}
			s.principalVariation = result.PV
		}
		if dl != nil {
			dl.Best = m.Coords()
			dl.Score = val
			dl.Nodes = s.nodes.Load()
			if err := s.writeDepthLog(*dl); err != nil {
				log.Err(err).Msg("could-not-write-search-log")
			}
		}
	}
	result.Nodes = s.nodes.Load()
	result.Elapsed = time.Since(tstart)

	ev := log.Info().
		Str("move", result.Move.Coords()).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Float64("time-elapsed-sec", result.Elapsed.Seconds())
	if s.evalCache != nil {
		lookups, hits := s.evalCache.Stats()
		ev = ev.Uint64("eval-cache-lookups", lookups).Uint64("eval-cache-hits", hits)
	}
	ev.Msg("solve-returning")
	return result, nil
}

// AIMove is Solve for Self without cancellation. It returns move.None when
// the board is full.
func (s *Solver) AIMove(b *board.Board, maxDepth int) move.Move {
	res, err := s.Solve(context.Background(), b, board.Self, maxDepth)
	if err != nil {
		if errors.Is(err, ErrInvalidDepth) {
			panic(err)
		}
		return move.None
	}
	return res.Move
}

func (s *Solver) SetCandidateLimit(limit int) {
	s.candidateLimit = limit
}

func (s *Solver) CandidateLimit() int {
	return s.candidateLimit
}

func (s *Solver) SetDeepeningPolicy(p DeepeningPolicy) {
	s.policy = p
}

func (s *Solver) SetQuickWinOptim(w bool) {
	s.quickWinOptim = w
}

// SetPruningDisabled turns off alpha-beta cutoffs. Only useful to check
// that pruning does not change results.
func (s *Solver) SetPruningDisabled(d bool) {
	s.pruningDisabled = d
}

func (s *Solver) SetEvalCache(c *EvalCache) {
	s.evalCache = c
}

func (s *Solver) SetLogStream(l io.Writer) {
	s.logStream = l
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) PrincipalVariation() PVLine {
	return s.principalVariation
}
