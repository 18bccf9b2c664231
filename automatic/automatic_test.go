package automatic

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/gobang/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func arenaConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardSize, 7)
	cfg.Set(config.ConfigMaxDepth, 1)
	cfg.Set(config.ConfigCandidateLimit, 6)
	cfg.Set(config.ConfigEvalCacheFraction, 0)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 4)
	r, err := NewGameRunner(logchan, arenaConfig())
	is.NoErr(err)

	res, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.First, Player1)
	is.Equal(len(res.Opening), DefaultOpeningPlies)
	is.True(res.Length >= 9)
	is.True(!r.Game().IsPlaying())
	is.True(res.Winner == Player1 || res.Winner == Player2 || res.Winner == DrawTag)
	row := <-logchan
	is.True(strings.HasPrefix(row, res.GameID+","))

	res, err = r.PlayGame(context.Background())
	is.NoErr(err)
	is.Equal(res.First, Player2)
	<-logchan
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, arenaConfig())
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.PlayGame(ctx)
	is.True(err != nil)
}

func TestCompVComp(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "games.csv")
	err := StartCompVComp(context.Background(), arenaConfig(), 6, 3, out)
	is.NoErr(err)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	is.NoErr(err)
	is.Equal(len(records), 7)
	is.Equal(records[0][0], "gameID")

	summary, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.True(strings.Contains(summary, "Games played: 6\n"))
	is.True(strings.Contains(summary, "Game lengths:"))
}

func TestAnalyze(t *testing.T) {
	is := is.New(t)
	log := csvHeader +
		"a,p1,p1,11,D4 C3,100,90\n" +
		"b,p2,p1,20,D4 E5,200,210\n" +
		"c,p1,draw,49,C4 D4,300,310\n" +
		"d,p2,p2,16,D3 D5,50,60\n"
	summary, err := analyze(strings.NewReader(log))
	is.NoErr(err)
	assert.Contains(t, summary, "Games played: 4\n")
	assert.Contains(t, summary, "p1 wins: 2.0 (50.000%)\n")
	assert.Contains(t, summary, "p2 wins: 1.0 (25.000%)\n")
	assert.Contains(t, summary, "Draws: 1.0 (25.000%)\n")
	assert.Contains(t, summary, "Player who went first wins: 2.5 (62.500%)\n")
	assert.Contains(t, summary, "min 11  max 49")
	assert.Contains(t, summary, "Nodes searched: p1 650  p2 670\n")

	_, err = analyze(strings.NewReader("a,b\n"))
	is.True(err != nil)

	summary, err = analyze(strings.NewReader(csvHeader))
	is.NoErr(err)
	is.Equal(summary, "Games played: 0\n")
}
