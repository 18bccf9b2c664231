package gamelog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	}
}

func TestMoveLogFormat(t *testing.T) {
	is := is.New(t)
	l := NewMoveLog()
	l.now = fixedClock()
	l.LogMove("Human", move.New(7, 7))
	l.LogMove("AI", move.New(7, 8))
	l.LogResign("Human", "AI")
	is.Equal(l.Entries(), []string{
		"14:05:07 - Human: Move to (7, 7)",
		"14:05:07 - AI: Move to (7, 8)",
		"14:05:07 - Human resigned. AI wins!",
	})
	l.Pop()
	is.Equal(l.Len(), 2)

	var buf bytes.Buffer
	_, err := l.WriteTo(&buf)
	is.NoErr(err)
	assert.Equal(t, "Gomoku Game Log\n===============\n\n"+
		"14:05:07 - Human: Move to (7, 7)\n"+
		"14:05:07 - AI: Move to (7, 8)\n", buf.String())

	l.Reset()
	is.Equal(l.Len(), 0)
	l.Pop()
	is.Equal(l.Len(), 0)
}

func TestMoveLogSave(t *testing.T) {
	is := is.New(t)
	dir := filepath.Join(t.TempDir(), "logs")
	l := NewMoveLog()
	l.now = fixedClock()
	l.LogMove("Human", move.New(0, 0))
	path, err := l.Save(dir)
	is.NoErr(err)
	is.Equal(filepath.Base(path), "gomoku_log_20240309_140507.txt")
	contents, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(string(contents), "Gomoku Game Log\n===============\n\n14:05:07 - Human: Move to (0, 0)\n")
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	a := []move.Move{move.New(7, 7), move.New(7, 8)}
	b := []move.Move{move.New(7, 8), move.New(7, 7)}
	is.Equal(Fingerprint(15, a), Fingerprint(15, a))
	is.True(Fingerprint(15, a) != Fingerprint(15, b))
	is.True(Fingerprint(15, a) != Fingerprint(19, a))
	is.Equal(len(Fingerprint(15, nil)), 16)
}

func finishedGame(is *is.I) *game.Game {
	g, err := game.NewGameWithSize(15, board.Opponent)
	is.NoErr(err)
	for c := 0; c < 5; c++ {
		is.NoErr(g.PlayMove(move.New(0, c)))
		if c < 4 {
			is.NoErr(g.PlayMove(move.New(1, c)))
		}
	}
	return g
}

func TestArchive(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "data", "games.db"))
	is.NoErr(err)
	defer a.Close()

	g := finishedGame(is)
	inserted, err := a.SaveGame(ctx, g)
	is.NoErr(err)
	is.True(inserted)

	// the same game again is ignored
	inserted, err = a.SaveGame(ctx, g)
	is.NoErr(err)
	is.True(!inserted)

	other, err := game.NewGameWithSize(9, board.Self)
	is.NoErr(err)
	is.NoErr(other.PlayMove(move.New(4, 4)))
	is.NoErr(other.Resign())
	_, err = a.SaveGame(ctx, other)
	is.NoErr(err)

	n, err := a.Count(ctx)
	is.NoErr(err)
	is.Equal(n, 2)

	recs, err := a.Recent(ctx, 10)
	is.NoErr(err)
	is.Equal(len(recs), 2)
	// newest first
	is.Equal(recs[0].BoardSize, 9)
	is.Equal(recs[0].Result, "resigned")
	is.Equal(recs[0].Winner, "AI")
	is.Equal(recs[0].Moves, []string{"E5"})
	is.Equal(recs[1].Winner, "Human")
	is.Equal(recs[1].MoveCount, 9)
	is.Equal(recs[1].FirstPlayer, "Human")
	is.Equal(recs[1].Fingerprint, Fingerprint(15, g.Moves()))
}
