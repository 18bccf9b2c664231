// Package game runs a single Gomoku game: whose turn it is, the move
// history, undo, resignation and the result. It doesn't care who is
// choosing the moves; the shell and the arena drive it.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/rules"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("no moves to undo")
)

type PlayState int

const (
	StatePlaying PlayState = iota
	StateWon
	StateDrawn
	StateResigned
)

func (p PlayState) String() string {
	switch p {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateDrawn:
		return "drawn"
	case StateResigned:
		return "resigned"
	}
	return "unknown"
}

// Turn is one entry of the game history.
type Turn struct {
	Player board.Cell
	Move   move.Move
}

// Game holds the board and history. The engine plays Self stones and the
// human (or the second engine in the arena) plays Opponent stones.
type Game struct {
	uid     string
	board   *board.Board
	history []Turn
	first   board.Cell
	onturn  board.Cell
	playing PlayState
	winner  board.Cell
}

// NewGame starts a game with the configured board size. Opponent moves
// first unless engine-first is set.
func NewGame(cfg *config.Config) (*Game, error) {
	first := board.Opponent
	if cfg.GetBool(config.ConfigEngineFirst) {
		first = board.Self
	}
	return NewGameWithSize(cfg.GetInt(config.ConfigBoardSize), first)
}

func NewGameWithSize(dim int, first board.Cell) (*Game, error) {
	if dim < 1 || dim > board.MaxDim {
		return nil, fmt.Errorf("board size %d out of range 1-%d", dim, board.MaxDim)
	}
	if first != board.Self && first != board.Opponent {
		return nil, fmt.Errorf("first player must be self or opponent, got %v", first)
	}
	g := &Game{
		uid:    fmt.Sprintf("%016x", frand.Uint64n(1<<63)),
		board:  board.NewBoard(dim),
		first:  first,
		onturn: first,
	}
	log.Debug().Str("uid", g.uid).Int("size", dim).Str("first", PlayerName(first)).Msg("new-game")
	return g, nil
}

// PlayerName is the label used in logs and the shell.
func PlayerName(c board.Cell) string {
	switch c {
	case board.Self:
		return "AI"
	case board.Opponent:
		return "Human"
	}
	return "Nobody"
}

// PlayMove places a stone for the player on turn.
func (g *Game) PlayMove(m move.Move) error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	if err := g.board.PlaceOrErr(m, g.onturn); err != nil {
		return err
	}
	g.history = append(g.history, Turn{Player: g.onturn, Move: m})
	g.updateResult(g.onturn)
	if g.playing == StatePlaying {
		g.onturn = g.onturn.Other()
	}
	return nil
}

func (g *Game) updateResult(justMoved board.Cell) {
	switch {
	case rules.HasFiveInARow(g.board, justMoved):
		g.playing = StateWon
		g.winner = justMoved
	case g.board.Full():
		g.playing = StateDrawn
	}
}

// Undo takes back the last move, reopening a finished game if needed.
// Undoing a resignation just cancels it.
func (g *Game) Undo() error {
	if g.playing == StateResigned {
		g.playing = StatePlaying
		g.winner = board.Empty
		return nil
	}
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board.Remove(last.Move)
	g.onturn = last.Player
	g.playing = StatePlaying
	g.winner = board.Empty
	return nil
}

// Resign ends the game; the player not on turn wins.
func (g *Game) Resign() error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	g.playing = StateResigned
	g.winner = g.onturn.Other()
	return nil
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Board() *board.Board {
	return g.board
}

// History returns a copy of the turns played so far.
func (g *Game) History() []Turn {
	return append([]Turn(nil), g.history...)
}

func (g *Game) Moves() []move.Move {
	ms := make([]move.Move, len(g.history))
	for i, t := range g.history {
		ms[i] = t.Move
	}
	return ms
}

func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) LastMove() move.Move {
	if len(g.history) == 0 {
		return move.None
	}
	return g.history[len(g.history)-1].Move
}

func (g *Game) FirstPlayer() board.Cell {
	return g.first
}

func (g *Game) PlayerOnTurn() board.Cell {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) IsPlaying() bool {
	return g.playing == StatePlaying
}

// Winner is Empty while the game is going on and after a draw.
func (g *Game) Winner() board.Cell {
	return g.winner
}

// ResultString describes the state of the game for display.
func (g *Game) ResultString() string {
	switch g.playing {
	case StateWon:
		return fmt.Sprintf("%s wins", PlayerName(g.winner))
	case StateResigned:
		return fmt.Sprintf("%s resigned. %s wins!", PlayerName(g.winner.Other()), PlayerName(g.winner))
	case StateDrawn:
		return "Draw"
	}
	return fmt.Sprintf("%s to move", PlayerName(g.onturn))
}

func (g *Game) ToDisplayText() string {
	return g.board.ToDisplayText() + "\n" + g.ResultString() + "\n"
}
