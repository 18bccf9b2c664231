// Package automatic plays engine-vs-engine Gomoku games for testing
// search settings against each other.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/turnplayer"
)

const (
	Player1 = "p1"
	Player2 = "p2"
	DrawTag = "draw"

	// DefaultOpeningPlies random stones are placed near the centre before
	// the engines take over, so repeated games differ.
	DefaultOpeningPlies = 2
	openingRadius       = 2
)

var csvHeader = "gameID,first,winner,length,opening,p1nodes,p2nodes\n"

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// GameResult summarises one finished game.
type GameResult struct {
	GameID  string
	First   string
	Winner  string
	Length  int
	Opening []move.Move
	Nodes   [2]uint64
}

func (g *GameResult) CSVRow() string {
	opening := strings.Join(lo.Map(g.Opening, func(m move.Move, _ int) string {
		return m.Coords()
	}), " ")
	return fmt.Sprintf("%s,%s,%s,%d,%s,%d,%d\n", g.GameID, g.First, g.Winner,
		g.Length, opening, g.Nodes[0], g.Nodes[1])
}

// GameRunner owns one game and an engine per player. Player 1 plays Self
// stones and player 2 plays Opponent stones.
type GameRunner struct {
	cfg          *config.Config
	game         *game.Game
	engines      [2]*turnplayer.Engine
	openingPlies int
	gamesPlayed  int
	logchan      chan string
}

// NewGameRunner builds both engines from cfg.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{cfg: cfg, logchan: logchan, openingPlies: DefaultOpeningPlies}
	// no search logs here; the workers would all write the same file
	for i := range r.engines {
		s, err := turnplayer.NewSolver(cfg)
		if err != nil {
			return nil, err
		}
		r.engines[i] = turnplayer.NewEngineWithSolver(s, cfg.GetInt(config.ConfigMaxDepth))
	}
	return r, nil
}

// SetEngine replaces the engine for player idx (0 or 1).
func (r *GameRunner) SetEngine(idx int, e *turnplayer.Engine) {
	r.engines[idx] = e
}

func (r *GameRunner) SetOpeningPlies(n int) {
	r.openingPlies = n
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func playerTag(c board.Cell) string {
	switch c {
	case board.Self:
		return Player1
	case board.Opponent:
		return Player2
	}
	return DrawTag
}

func engineIdx(c board.Cell) int {
	if c == board.Self {
		return 0
	}
	return 1
}

// randomOpening places up to n stones on empty cells within openingRadius
// of the centre, alternating sides.
func (r *GameRunner) randomOpening(n int) ([]move.Move, error) {
	dim := r.game.Board().Dim()
	center := dim / 2
	var cells []move.Move
	for row := max(0, center-openingRadius); row <= min(dim-1, center+openingRadius); row++ {
		for col := max(0, center-openingRadius); col <= min(dim-1, center+openingRadius); col++ {
			cells = append(cells, move.New(row, col))
		}
	}
	frand.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	n = min(n, len(cells))
	opening := cells[:n]
	for _, m := range opening {
		if err := r.game.PlayMove(m); err != nil {
			return nil, err
		}
	}
	return opening, nil
}

// PlayGame plays one full game. Players alternate going first between
// games played by the same runner.
func (r *GameRunner) PlayGame(ctx context.Context) (*GameResult, error) {
	first := board.Self
	if r.gamesPlayed%2 == 1 {
		first = board.Opponent
	}
	r.gamesPlayed++
	g, err := game.NewGameWithSize(r.cfg.GetInt(config.ConfigBoardSize), first)
	if err != nil {
		return nil, err
	}
	r.game = g
	opening, err := r.randomOpening(r.openingPlies)
	if err != nil {
		return nil, err
	}
	res := &GameResult{GameID: g.Uid(), First: playerTag(first), Opening: opening}

	for g.IsPlaying() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := engineIdx(g.PlayerOnTurn())
		sr, err := r.engines[idx].PlayTurn(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("game %s turn %d: %w", g.Uid(), g.Turn(), err)
		}
		res.Nodes[idx] += sr.Nodes
	}
	res.Winner = playerTag(g.Winner())
	res.Length = g.Turn()
	log.Debug().Str("game", res.GameID).Str("winner", res.Winner).Int("length", res.Length).Msg("game-over")
	if r.logchan != nil {
		r.logchan <- res.CSVRow()
	}
	return res, nil
}
