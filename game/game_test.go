package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/move"
)

func TestNewGameFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardSize, 8)
	g, err := NewGame(cfg)
	is.NoErr(err)
	is.Equal(g.Board().Dim(), 8)
	is.Equal(g.PlayerOnTurn(), board.Opponent)
	is.True(g.IsPlaying())
	is.True(g.Uid() != "")

	cfg.Set(config.ConfigEngineFirst, true)
	g, err = NewGame(cfg)
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.Self)

	_, err = NewGameWithSize(0, board.Self)
	is.True(err != nil)
	_, err = NewGameWithSize(15, board.Empty)
	is.True(err != nil)
}

func TestPlayAlternates(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	is.Equal(g.PlayerOnTurn(), board.Self)
	is.NoErr(g.PlayMove(move.New(7, 8)))
	is.Equal(g.PlayerOnTurn(), board.Opponent)
	is.Equal(g.Board().At(7, 7), board.Opponent)
	is.Equal(g.Board().At(7, 8), board.Self)
	is.Equal(g.Turn(), 2)
	is.Equal(g.LastMove(), move.New(7, 8))
	is.Equal(g.Moves(), []move.Move{move.New(7, 7), move.New(7, 8)})
}

func TestInvalidMove(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	err = g.PlayMove(move.New(7, 7))
	is.True(errors.Is(err, board.ErrInvalidMove))
	err = g.PlayMove(move.New(15, 0))
	is.True(errors.Is(err, board.ErrInvalidMove))
	// a rejected move doesn't change the turn
	is.Equal(g.PlayerOnTurn(), board.Self)
	is.Equal(g.Turn(), 1)
}

func playFive(is *is.I, g *Game) {
	for c := 0; c < 5; c++ {
		is.NoErr(g.PlayMove(move.New(0, c)))
		if c < 4 {
			is.NoErr(g.PlayMove(move.New(1, c)))
		}
	}
}

func TestWinEndsGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	playFive(is, g)
	is.Equal(g.Playing(), StateWon)
	is.Equal(g.Winner(), board.Opponent)
	is.Equal(g.ResultString(), "Human wins")
	is.True(errors.Is(g.PlayMove(move.New(5, 5)), ErrGameOver))
	is.True(errors.Is(g.Resign(), ErrGameOver))

	// undo reopens the game with the winner to move again
	is.NoErr(g.Undo())
	is.True(g.IsPlaying())
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.PlayerOnTurn(), board.Opponent)
	is.Equal(g.Board().At(0, 4), board.Empty)
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(2, board.Opponent)
	is.NoErr(err)
	for _, m := range []move.Move{move.New(0, 0), move.New(0, 1), move.New(1, 1), move.New(1, 0)} {
		is.NoErr(g.PlayMove(m))
	}
	is.Equal(g.Playing(), StateDrawn)
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.ResultString(), "Draw")
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Self)
	is.NoErr(err)
	is.True(errors.Is(g.Undo(), ErrNothingToUndo))
	is.NoErr(g.PlayMove(move.New(3, 3)))
	is.NoErr(g.PlayMove(move.New(4, 4)))
	is.NoErr(g.Undo())
	is.Equal(g.PlayerOnTurn(), board.Opponent)
	is.Equal(g.Board().StoneCount(), 1)
	is.NoErr(g.Undo())
	is.Equal(g.PlayerOnTurn(), board.Self)
	is.True(g.Board().IsEmpty())
	is.Equal(g.LastMove(), move.None)
}

func TestResign(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	// Self is on turn and gives up.
	is.NoErr(g.Resign())
	is.Equal(g.Playing(), StateResigned)
	is.Equal(g.Winner(), board.Opponent)
	is.Equal(g.ResultString(), "AI resigned. Human wins!")

	is.NoErr(g.Undo())
	is.True(g.IsPlaying())
	is.Equal(g.Turn(), 1)
}

func TestHistoryIsACopy(t *testing.T) {
	is := is.New(t)
	g, err := NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	h := g.History()
	h[0].Move = move.New(0, 0)
	is.Equal(g.History()[0], Turn{Player: board.Opponent, Move: move.New(7, 7)})
}
