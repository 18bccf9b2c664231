package turnplayer

import (
	"context"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/negamax"
)

// AIPlayer is a game where the engine answers for Self.
type AIPlayer struct {
	*game.Game
	engine *Engine
}

func NewAIPlayer(cfg *config.Config, opts *GameOptions) (*AIPlayer, error) {
	opts.SetDefaults(cfg)
	g, err := game.NewGameWithSize(opts.BoardSize, opts.FirstPlayer())
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &AIPlayer{Game: g, engine: e}, nil
}

func NewAIPlayerFromGame(g *game.Game, e *Engine) *AIPlayer {
	return &AIPlayer{Game: g, engine: e}
}

func (p *AIPlayer) Engine() *Engine {
	return p.engine
}

// PlayHumanMove parses a coordinate and plays it for the player on turn.
func (p *AIPlayer) PlayHumanMove(coords string) (move.Move, error) {
	m, err := move.Parse(coords)
	if err != nil {
		return move.None, err
	}
	if err := p.PlayMove(m); err != nil {
		return move.None, err
	}
	return m, nil
}

// GenerateMove returns the engine's choice for the side on turn.
func (p *AIPlayer) GenerateMove(ctx context.Context) (*negamax.Result, error) {
	return p.engine.GenerateMove(ctx, p.Game)
}

// PlayAIMove searches and plays for the side on turn.
func (p *AIPlayer) PlayAIMove(ctx context.Context) (*negamax.Result, error) {
	return p.engine.PlayTurn(ctx, p.Game)
}

// IsAITurn is true when Self stones are to move.
func (p *AIPlayer) IsAITurn() bool {
	return p.IsPlaying() && p.PlayerOnTurn() == board.Self
}
