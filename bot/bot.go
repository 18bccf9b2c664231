// Package bot serves engine moves over NATS request/reply.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/turnplayer"
)

var (
	errEmptyRequest = errors.New("empty request")
	errDepthLimit   = errors.New("depth over the bot's limit")
)

type Bot struct {
	config *config.Config
	engine *turnplayer.Engine
}

func NewBot(cfg *config.Config) (*Bot, error) {
	s, err := turnplayer.NewSolver(cfg)
	if err != nil {
		return nil, err
	}
	return &Bot{
		config: cfg,
		engine: turnplayer.NewEngineWithSolver(s, cfg.GetInt(config.ConfigMaxDepth)),
	}, nil
}

func errorResponse(message string, err error) *BotResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &BotResponse{Error: msg}
}

// LambdaEvent is a move request delivered by AWS Lambda. The move is
// also published to ReplyChannel when one is set.
type LambdaEvent struct {
	GameID       string   `json:"game_id"`
	BoardSize    int      `json:"board_size"`
	Moves        []string `json:"moves"`
	EngineFirst  bool     `json:"engine_first"`
	MaxDepth     int      `json:"max_depth"`
	ReplyChannel string   `json:"reply_channel"`
}

func (evt *LambdaEvent) Request() *BotRequest {
	return &BotRequest{
		BoardSize:   evt.BoardSize,
		Moves:       evt.Moves,
		EngineFirst: evt.EngineFirst,
		MaxDepth:    evt.MaxDepth,
	}
}

// Deserialize rebuilds the game described by an encoded request.
func (bot *Bot) Deserialize(data []byte) (*game.Game, *BotRequest, error) {
	if len(data) == 0 {
		return nil, nil, errEmptyRequest
	}
	req := &BotRequest{}
	if err := req.Unmarshal(data); err != nil {
		return nil, nil, err
	}
	g, err := GameFromRequest(req)
	if err != nil {
		return nil, nil, err
	}
	return g, req, nil
}

// GameFromRequest replays the request's moves on a new board.
func GameFromRequest(req *BotRequest) (*game.Game, error) {
	first := board.Opponent
	if req.EngineFirst {
		first = board.Self
	}
	g, err := game.NewGameWithSize(req.BoardSize, first)
	if err != nil {
		return nil, err
	}
	for i, coords := range req.Moves {
		m, err := move.Parse(coords)
		if err != nil {
			return nil, err
		}
		if err := g.PlayMove(m); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, coords, err)
		}
	}
	return g, nil
}

func (bot *Bot) handle(ctx context.Context, data []byte) *BotResponse {
	g, req, err := bot.Deserialize(data)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	return bot.move(ctx, g, req.MaxDepth)
}

// Move answers one request for the side on turn.
func (bot *Bot) Move(ctx context.Context, req *BotRequest) *BotResponse {
	g, err := GameFromRequest(req)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	return bot.move(ctx, g, req.MaxDepth)
}

// move searches to the requested depth, which may lower the configured
// max-depth but never raise it.
func (bot *Bot) move(ctx context.Context, g *game.Game, maxDepth int) *BotResponse {
	depth := bot.config.GetInt(config.ConfigMaxDepth)
	if maxDepth > depth {
		return errorResponse("Bad depth",
			fmt.Errorf("%w: asked for %d, limit is %d", errDepthLimit, maxDepth, depth))
	}
	if maxDepth > 0 {
		depth = maxDepth
	}
	if err := bot.engine.SetMaxDepth(depth); err != nil {
		return errorResponse("Bad depth", err)
	}
	res, err := bot.engine.GenerateMove(ctx, g)
	if err != nil {
		return errorResponse("Could not generate move", err)
	}
	log.Info().Str("gid", g.Uid()).Str("move", res.Move.Coords()).Int("score", res.Score).
		Msg("generated-move")
	return &BotResponse{
		Move:  res.Move.Coords(),
		Score: res.Score,
		Depth: res.Depth,
		Nodes: res.Nodes,
	}
}

// Main answers requests on channel until ctx is done.
func Main(ctx context.Context, channel string, bot *Bot) error {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	// Simple Async Subscriber
	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(ctx, m.Data)
		if err := m.Respond(resp.Marshal()); err != nil {
			log.Err(err).Msg("could-not-respond")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", channel)

	<-ctx.Done()
	return nc.Drain()
}
