package pattern

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/rules"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// window parses . x o and # (off the board).
func window(s string) Window {
	var w Window
	for i, ch := range s {
		switch ch {
		case 'x':
			w[i] = board.Self
		case 'o':
			w[i] = board.Opponent
		case '#':
			w[i] = Blocked
		}
	}
	return w
}

func TestScoreWindow(t *testing.T) {
	is := is.New(t)
	ev := NewEvaluator(DefaultTable())
	type testdata struct {
		w     string
		score int
	}
	cases := []testdata{
		{".........", 0},
		{"...xxx...", 720},
		{"####x....", 0},
		{"....x....", 20},
		{"xxxxx....", 54320},
		{".xxxx....", 33640},
		{"..oooo...", -33640},
		{"xo.x.o.x.", 20},
		{"x.xx.xx.x", 240},
		{"#..ooo..#", -720},
	}
	for _, tc := range cases {
		w := window(tc.w)
		is.Equal(ScoreWindow(w, DefaultTable()), tc.score) // tc.w
		is.Equal(ev.ScoreWindow(w), tc.score)              // tc.w
	}

	// A 2 in a shape is satisfied by an opposing stone or the edge.
	capped, err := NewTable([]Entry{{"21110", 100}})
	is.NoErr(err)
	cev := NewEvaluator(capped)
	cases = []testdata{
		{"oxxx.....", 100},
		{"#xxx.....", 100},
		{"##xxx....", 100},
		{".xxx.....", 0},
		{"xxxx.....", 0},
		{"xooo.....", -100},
		{"#ooo.....", -100},
		{"ooo#.....", 0},
	}
	for _, tc := range cases {
		w := window(tc.w)
		is.Equal(ScoreWindow(w, capped), tc.score) // tc.w
		is.Equal(cev.ScoreWindow(w), tc.score)     // tc.w
	}
}

func TestEdgeClosesShapes(t *testing.T) {
	is := is.New(t)
	// A three against the edge is not open.
	is.Equal(ScoreWindow(window("##xxx...."), DefaultTable()), 0)
	is.Equal(ScoreWindow(window("#.xxx...."), DefaultTable()), 720)
}

func TestEncodeDecode(t *testing.T) {
	is := is.New(t)
	w := window("#.xo#oxx.")
	is.Equal(decode(encode(w)), w)
	is.Equal(encode(window(".........")), uint32(0))
}

func randomBoard(dim int, fill int) *board.Board {
	b := board.NewBoard(dim)
	for i := 0; i < fill; i++ {
		m := move.New(frand.Intn(dim), frand.Intn(dim))
		c := board.Self
		if frand.Intn(2) == 0 {
			c = board.Opponent
		}
		b.Place(m, c)
	}
	return b
}

func naiveEvaluate(b *board.Board, t *Table) int {
	total := 0
	for _, d := range rules.Directions {
		for r := 0; r < b.Dim(); r++ {
			for c := 0; c < b.Dim(); c++ {
				total += ScoreWindow(WindowAt(b, r, c, d[0], d[1]), t)
			}
		}
	}
	return total
}

func TestEvaluateBoardMatchesWindows(t *testing.T) {
	ev := NewEvaluator(DefaultTable())
	for _, dim := range []int{1, 3, 5, 8, 15} {
		for i := 0; i < 20; i++ {
			b := randomBoard(dim, frand.Intn(dim*dim+1))
			assert.Equal(t, naiveEvaluate(b, DefaultTable()), ev.EvaluateBoard(b), b.ToDisplayText())
		}
	}
}

func TestEvaluatorSymmetry(t *testing.T) {
	ev := NewEvaluator(DefaultTable())
	for _, dim := range []int{8, 15} {
		for i := 0; i < 50; i++ {
			b := randomBoard(dim, frand.Intn(40))
			assert.Equal(t, ev.EvaluateBoard(b), -ev.EvaluateBoard(b.Swapped()), b.ToDisplayText())
		}
	}
}

func TestEvaluateEmptyBoard(t *testing.T) {
	is := is.New(t)
	ev := NewEvaluator(DefaultTable())
	is.Equal(ev.EvaluateBoard(board.NewBoard(15)), 0)
}

func TestEvaluateFavorsStrongerShapes(t *testing.T) {
	is := is.New(t)
	ev := NewEvaluator(DefaultTable())
	b, err := board.FromRows([]string{
		"........",
		"........",
		"........",
		"..xxx...",
		"........",
		"........",
		"......o.",
		"........",
	})
	is.NoErr(err)
	is.True(ev.EvaluateBoard(b) > 0)
	is.True(ev.EvaluateBoard(b.Swapped()) < 0)
}

func TestNewTableErrors(t *testing.T) {
	is := is.New(t)
	_, err := NewTable(nil)
	is.True(errors.Is(err, ErrEmptyTable))
	_, err = NewTable([]Entry{{"000", 10}})
	is.True(errors.Is(err, ErrBadShape))
	_, err = NewTable([]Entry{{"01a", 10}})
	is.True(errors.Is(err, ErrBadShape))
	_, err = NewTable([]Entry{{"0111111110", 10}})
	is.True(errors.Is(err, ErrBadShape))
	_, err = NewTable([]Entry{{"11", 0}})
	is.True(errors.Is(err, ErrBadShape))
}

func TestMirroredPatterns(t *testing.T) {
	is := is.New(t)
	tbl, err := NewTable([]Entry{{"0112", 7}})
	is.NoErr(err)
	ps := tbl.Patterns()
	is.Equal(len(ps), 2)
	is.Equal(ps[0].Score, 7)
	is.Equal(ps[1].Score, -7)
	is.Equal(ps[1].Shape, []board.Cell{board.Empty, board.Opponent, board.Opponent, board.Self})
	is.Equal(ps[1].Edge, []bool{false, false, false, true})
	is.Equal(ScoreWindow(window(".xx#....."), tbl), 7)
	is.Equal(ScoreWindow(window(".xxo....."), tbl), 7)
	is.Equal(ScoreWindow(window(".oo#....."), tbl), -7)
	// The edge never stands in for an empty cell or a stone of the shape.
	is.Equal(ScoreWindow(window("#xxo....."), tbl), 0)
	is.Equal(ScoreWindow(window(".x#o....."), tbl), 0)
}

func TestScoreRange(t *testing.T) {
	is := is.New(t)
	_, err := NewTable([]Entry{{"11111", 3_000_000_000}})
	is.True(errors.Is(err, ErrScoreRange))
	// Five placements of 500M each overflow even though one score fits.
	_, err = NewTable([]Entry{{"11111", 500_000_000}})
	is.True(errors.Is(err, ErrScoreRange))
	_, err = NewTable([]Entry{{"11111", -3_000_000_000}})
	is.True(errors.Is(err, ErrScoreRange))
	_, err = NewTable([]Entry{{"11111", 400_000_000}, {"1", 200_000_000}})
	is.True(errors.Is(err, ErrScoreRange))

	tbl, err := NewTable([]Entry{{"11111", 80_000_000}})
	is.NoErr(err)
	w := window("..xxxxx..")
	is.Equal(ScoreWindow(w, tbl), 80_000_000)
	is.Equal(NewEvaluator(tbl).ScoreWindow(w), 80_000_000)
	w = window("xxxxxxxxx")
	is.Equal(NewEvaluator(tbl).ScoreWindow(w), 400_000_000)
}

func TestParseTable(t *testing.T) {
	is := is.New(t)
	tbl, err := ParseTable(strings.NewReader(`
patterns:
  - shape: "11111"
    score: 100000
  - shape: "0110"
    score: 50
`))
	is.NoErr(err)
	is.Equal(tbl.Entries(), []Entry{{"11111", 100000}, {"0110", 50}})
	ev := NewEvaluator(tbl)
	is.Equal(ev.ScoreWindow(window("..xx.....")), 50)

	_, err = ParseTable(strings.NewReader(""))
	is.True(errors.Is(err, ErrEmptyTable))
	_, err = ParseTable(strings.NewReader("patterns:\n  - shape: 11\n    weight: 3\n"))
	is.True(err != nil)
}

func TestWriteTable(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(WriteTable(&buf, DefaultTable()))
	tbl, err := ParseTable(&buf)
	is.NoErr(err)
	is.Equal(tbl.Entries(), DefaultEntries)
}

func TestLoadTableDefault(t *testing.T) {
	is := is.New(t)
	tbl, err := LoadTable("")
	is.NoErr(err)
	is.True(tbl == DefaultTable())
	_, err = LoadTable("/nonexistent/patterns.yaml")
	is.True(err != nil)
}

func BenchmarkEvaluateBoard(b *testing.B) {
	ev := NewEvaluator(DefaultTable())
	bd := randomBoard(15, 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev.EvaluateBoard(bd)
	}
}
