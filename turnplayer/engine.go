package turnplayer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/movegen"
	"github.com/domino14/gobang/negamax"
	"github.com/domino14/gobang/pattern"
)

// Engine picks moves for whichever side is on turn in a game.
type Engine struct {
	solver   *negamax.Solver
	maxDepth int
	logFile  *os.File
}

// NewSolver builds a solver from the search settings in cfg.
func NewSolver(cfg *config.Config) (*negamax.Solver, error) {
	table, err := pattern.LoadTable(cfg.GetString(config.ConfigPatternFile))
	if err != nil {
		return nil, err
	}
	policy, err := negamax.ParseDeepeningPolicy(cfg.GetString(config.ConfigDeepeningPolicy))
	if err != nil {
		return nil, err
	}
	s := &negamax.Solver{}
	if err := s.Init(movegen.NewProximityGenerator(), pattern.NewEvaluator(table)); err != nil {
		return nil, err
	}
	s.SetCandidateLimit(cfg.GetInt(config.ConfigCandidateLimit))
	s.SetDeepeningPolicy(policy)
	s.SetQuickWinOptim(cfg.GetBool(config.ConfigQuickWinExit))
	if frac := cfg.GetFloat64(config.ConfigEvalCacheFraction); frac > 0 {
		s.SetEvalCache(negamax.NewEvalCache(frac))
	}
	return s, nil
}

// NewEngine builds an engine from cfg. If search-log is set the solver
// writes its per-depth log there; call Close to release the file.
func NewEngine(cfg *config.Config) (*Engine, error) {
	s, err := NewSolver(cfg)
	if err != nil {
		return nil, err
	}
	e := &Engine{solver: s, maxDepth: cfg.GetInt(config.ConfigMaxDepth)}
	if path := cfg.GetString(config.ConfigSearchLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("opening search log: %w", err)
		}
		e.logFile = f
		s.SetLogStream(f)
		log.Info().Str("path", path).Msg("writing-search-log")
	}
	return e, nil
}

func NewEngineWithSolver(s *negamax.Solver, maxDepth int) *Engine {
	return &Engine{solver: s, maxDepth: maxDepth}
}

func (e *Engine) Solver() *negamax.Solver {
	return e.solver
}

func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

func (e *Engine) SetMaxDepth(d int) error {
	if d < 1 {
		return fmt.Errorf("%w: got %d", negamax.ErrInvalidDepth, d)
	}
	e.maxDepth = d
	return nil
}

func (e *Engine) Close() error {
	if e.logFile != nil {
		return e.logFile.Close()
	}
	return nil
}

// GenerateMove searches for the player on turn without changing the game.
func (e *Engine) GenerateMove(ctx context.Context, g *game.Game) (*negamax.Result, error) {
	if !g.IsPlaying() {
		return nil, game.ErrGameOver
	}
	return e.solver.Solve(ctx, g.Board(), g.PlayerOnTurn(), e.maxDepth)
}

// PlayTurn searches and plays the resulting move.
func (e *Engine) PlayTurn(ctx context.Context, g *game.Game) (*negamax.Result, error) {
	res, err := e.GenerateMove(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := g.PlayMove(res.Move); err != nil {
		return nil, err
	}
	return res, nil
}
