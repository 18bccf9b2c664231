package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/bot"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/gamelog"
	"github.com/domino14/gobang/negamax"
	"github.com/domino14/gobang/turnplayer"
)

const defaultArchiveListing = 10

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; start one with 'new'")
	errExit              = errors.New("exit requested")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (r *Response) Message() string {
	return r.message
}

// CmdOptions are the -key value pairs given to a command.
type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, fmt.Errorf("option %s not found", key)
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	if _, ok := c[key]; !ok {
		return defaultI, nil
	}
	return c.Int(key)
}

func (c CmdOptions) Bool(key string) (bool, error) {
	v, ok := c[key]
	if !ok {
		return false, fmt.Errorf("option %s not found", key)
	}
	return strconv.ParseBool(v)
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a line into a command, its positional arguments
// and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 1 && strings.HasPrefix(f, "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			cmd.options[f[1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) currentGame() (*turnplayer.AIPlayer, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return sc.game, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	opts := turnplayer.GameOptions{}
	opts.SetDefaults(sc.cfg)
	if len(cmd.args) > 0 {
		if err := opts.SetBoardSize(cmd.args[:1]); err != nil {
			return nil, err
		}
	}
	if who, ok := cmd.options["first"]; ok {
		if err := opts.SetFirst(who); err != nil {
			return nil, err
		}
	}
	g, err := game.NewGameWithSize(opts.BoardSize, opts.FirstPlayer())
	if err != nil {
		return nil, err
	}
	sc.game = turnplayer.NewAIPlayerFromGame(g, sc.engine)
	sc.movelog.Reset()
	log.Debug().Str("gid", g.Uid()).Int("size", opts.BoardSize).
		Str("first", game.PlayerName(opts.FirstPlayer())).Msg("new-game")

	var sb strings.Builder
	fmt.Fprintf(&sb, "New %dx%d game %s\n", opts.BoardSize, opts.BoardSize, g.Uid())
	if sc.autoReply && sc.game.IsAITurn() {
		line, err := sc.engineTurn(context.Background(), sc.engine.MaxDepth())
		if err != nil {
			return nil, err
		}
		sb.WriteString(line)
	}
	sb.WriteString(sc.gameText(sc.game))
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <coords>, e.g. play h8")
	}
	player := g.PlayerOnTurn()
	m, err := g.PlayHumanMove(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.movelog.LogMove(game.PlayerName(player), m)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s plays %s\n", game.PlayerName(player), m.Coords())
	if sc.autoReply && g.IsAITurn() {
		line, err := sc.engineTurn(context.Background(), sc.engine.MaxDepth())
		if err != nil {
			return nil, err
		}
		sb.WriteString(line)
	}
	sb.WriteString(sc.gameText(g))
	sb.WriteString(sc.gameOver())
	return msg(sb.String()), nil
}

// engineTurn searches for the side on turn and plays the result.
func (sc *ShellController) engineTurn(ctx context.Context, depth int) (string, error) {
	g, err := sc.currentGame()
	if err != nil {
		return "", err
	}
	old := sc.engine.MaxDepth()
	if err := sc.engine.SetMaxDepth(depth); err != nil {
		return "", err
	}
	defer sc.engine.SetMaxDepth(old)

	player := g.PlayerOnTurn()
	res, err := g.GenerateMove(ctx)
	if err != nil {
		return "", err
	}
	if err := g.PlayMove(res.Move); err != nil {
		return "", err
	}
	sc.movelog.LogMove(game.PlayerName(player), res.Move)
	return sc.describeResult(player, res), nil
}

func (sc *ShellController) describeResult(player board.Cell, res *negamax.Result) string {
	return sc.printer.Sprintf("%s plays %s (score %d, depth %d, %d nodes, %.3fs)\n",
		game.PlayerName(player), res.Move.Coords(), res.Score,
		res.Depth, res.Nodes, res.Elapsed.Seconds())
}

func (sc *ShellController) aiMove(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	depth, err := cmd.options.IntDefault("depth", sc.engine.MaxDepth())
	if err != nil {
		return nil, err
	}
	line, err := sc.engineTurn(context.Background(), depth)
	if err != nil {
		return nil, err
	}
	return msg(line + sc.gameText(g) + sc.gameOver()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	res, err := g.GenerateMove(context.Background())
	if err != nil {
		return nil, err
	}
	return msg(sc.printer.Sprintf("Best for %s: %s (score %d, %d nodes)\n%s",
		game.PlayerName(g.PlayerOnTurn()), res.Move.Coords(), res.Score, res.Nodes,
		res.PV.String())), nil
}

// undo takes back moves until the human is on turn again.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if g.Playing() == game.StateResigned {
		if err := g.Undo(); err != nil {
			return nil, err
		}
		sc.movelog.Pop()
		return msg("Resignation withdrawn\n" + sc.gameText(g)), nil
	}
	if err := g.Undo(); err != nil {
		return nil, err
	}
	sc.movelog.Pop()
	if sc.autoReply && g.IsAITurn() && g.Turn() > 0 {
		if err := g.Undo(); err != nil {
			return nil, err
		}
		sc.movelog.Pop()
	}
	return msg(sc.gameText(g)), nil
}

func (sc *ShellController) resign(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	loser := g.PlayerOnTurn()
	if err := g.Resign(); err != nil {
		return nil, err
	}
	sc.movelog.LogResign(game.PlayerName(loser), game.PlayerName(g.Winner()))
	return msg(g.ResultString() + "\n" + sc.gameOver()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Game %s, move %d\n%s", g.Uid(), g.Turn()+1, sc.gameText(g))), nil
}

// gameOver archives a finished game and returns a line describing that.
func (sc *ShellController) gameOver() string {
	if sc.game == nil || sc.game.IsPlaying() || sc.cfg.GetString(config.ConfigDBPath) == "" {
		return ""
	}
	inserted, err := sc.archiveGame(context.Background())
	if err != nil {
		log.Err(err).Msg("could-not-archive-game")
		return ""
	}
	if inserted {
		return "Game archived.\n"
	}
	return ""
}

func (sc *ShellController) archiveGame(ctx context.Context) (bool, error) {
	if sc.archive == nil {
		a, err := gamelog.OpenArchive(sc.cfg.GetString(config.ConfigDBPath))
		if err != nil {
			return false, err
		}
		sc.archive = a
	}
	return sc.archive.SaveGame(ctx, sc.game.Game)
}

func (sc *ShellController) archiveCmd(cmd *shellcmd) (*Response, error) {
	ctx := context.Background()
	if len(cmd.args) > 0 && cmd.args[0] == "list" {
		if sc.archive == nil {
			a, err := gamelog.OpenArchive(sc.cfg.GetString(config.ConfigDBPath))
			if err != nil {
				return nil, err
			}
			sc.archive = a
		}
		limit, err := cmd.options.IntDefault("n", defaultArchiveListing)
		if err != nil {
			return nil, err
		}
		recs, err := sc.archive.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		for _, r := range recs {
			fmt.Fprintf(&sb, "%4d  %s  %2dx%-2d  %-24s  %3d moves  %s\n", r.ID,
				r.CreatedAt.Format(time.DateTime), r.BoardSize, r.BoardSize, r.Result,
				r.MoveCount, r.Fingerprint)
		}
		if sb.Len() == 0 {
			return msg("No archived games\n"), nil
		}
		return msg(sb.String()), nil
	}
	if _, err := sc.currentGame(); err != nil {
		return nil, err
	}
	inserted, err := sc.archiveGame(ctx)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return msg("Game was already archived\n"), nil
	}
	return msg("Game archived\n"), nil
}

// remote asks a bot service over NATS for the move of the side on turn.
func (sc *ShellController) remote(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if !g.IsPlaying() {
		return nil, game.ErrGameOver
	}
	depth, err := cmd.options.IntDefault("depth", 0)
	if err != nil {
		return nil, err
	}
	if sc.botClient == nil {
		c, err := bot.NewClient(sc.cfg.GetString(config.ConfigNatsURL),
			sc.cfg.GetString(config.ConfigBotChannel))
		if err != nil {
			return nil, err
		}
		sc.botClient = c
	}
	player := g.PlayerOnTurn()
	m, resp, err := sc.botClient.RequestMove(g.Game, depth)
	if err != nil {
		return nil, err
	}
	if err := g.PlayMove(m); err != nil {
		return nil, err
	}
	sc.movelog.LogMove(game.PlayerName(player), m)
	line := sc.printer.Sprintf("Bot plays %s for %s (score %d, depth %d, %d nodes)\n",
		m.Coords(), game.PlayerName(player), resp.Score, resp.Depth, resp.Nodes)
	return msg(line + sc.gameText(g) + sc.gameOver()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.movelog.Len() == 0 {
		return nil, errors.New("nothing to save")
	}
	dir := sc.cfg.GetString(config.ConfigLogDir)
	if len(cmd.args) > 0 {
		dir = cmd.args[0]
	}
	path, err := sc.movelog.Save(dir)
	if err != nil {
		return nil, err
	}
	return msg("Move log saved to " + path + "\n"), nil
}

var settableKeys = []string{
	config.ConfigMaxDepth, config.ConfigCandidateLimit, config.ConfigDeepeningPolicy,
	config.ConfigQuickWinExit, config.ConfigBoardSize, config.ConfigEngineFirst, "autoreply",
}

// set changes a setting for the rest of the session. Search settings
// take effect on the next engine move.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settableKeys {
			fmt.Fprintf(&sb, "%-18s %v\n", k, sc.setting(k))
		}
		return msg(sb.String()), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v\n", key, sc.setting(key))), nil
	}
	value := cmd.args[1]
	solver := sc.engine.Solver()
	switch key {
	case config.ConfigMaxDepth:
		d, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if err := sc.engine.SetMaxDepth(d); err != nil {
			return nil, err
		}
	case config.ConfigCandidateLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		solver.SetCandidateLimit(n)
	case config.ConfigDeepeningPolicy:
		p, err := negamax.ParseDeepeningPolicy(value)
		if err != nil {
			return nil, err
		}
		solver.SetDeepeningPolicy(p)
	case config.ConfigQuickWinExit:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		solver.SetQuickWinOptim(b)
	case config.ConfigBoardSize:
		opts := turnplayer.GameOptions{}
		if err := opts.SetBoardSize([]string{value}); err != nil {
			return nil, err
		}
	case config.ConfigEngineFirst:
		if _, err := strconv.ParseBool(value); err != nil {
			return nil, err
		}
	case "autoreply":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.autoReply = b
		return msg(fmt.Sprintf("autoreply set to %v\n", b)), nil
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	sc.cfg.Set(key, value)
	return msg(fmt.Sprintf("%s set to %s\n", key, value)), nil
}

func (sc *ShellController) setting(key string) any {
	switch key {
	case config.ConfigMaxDepth:
		return sc.engine.MaxDepth()
	case "autoreply":
		return sc.autoReply
	}
	return sc.cfg.Get(key)
}
