// Package shell is the interactive command line for playing Gomoku (and
// the tic-tac-toe variants) against the engine.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/gobang/bot"
	"github.com/domino14/gobang/config"
	"github.com/domino14/gobang/gamelog"
	"github.com/domino14/gobang/move"
	"github.com/domino14/gobang/tictactoe"
	"github.com/domino14/gobang/turnplayer"
	"github.com/domino14/gobang/uttt"
)

type Mode int

const (
	GomokuMode Mode = iota
	TicTacToeMode
	UltimateMode
	InvalidMode
)

func (m Mode) String() string {
	switch m {
	case GomokuMode:
		return "gomoku"
	case TicTacToeMode:
		return "ttt"
	case UltimateMode:
		return "uttt"
	}
	return "invalid"
}

const (
	defaultUtttDepth = 4
	historyFile      = "/tmp/gobang_readline.tmp"
)

type ShellController struct {
	l       *readline.Instance
	cfg     *config.Config
	curMode Mode

	engine    *turnplayer.Engine
	game      *turnplayer.AIPlayer
	autoReply bool
	movelog   *gamelog.MoveLog
	archive   *gamelog.Archive
	botClient *bot.Client

	ttt       *tictactoe.Position
	uttt      *uttt.Position
	utttDepth int

	printer *message.Printer
	output  *termenv.Output
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	if !strings.HasSuffix(msg, "\n") {
		io.WriteString(w, "\n")
	}
}

// newController builds everything but the line reader.
func newController(cfg *config.Config) (*ShellController, error) {
	e, err := turnplayer.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &ShellController{
		cfg:       cfg,
		engine:    e,
		autoReply: true,
		movelog:   gamelog.NewMoveLog(),
		utttDepth: defaultUtttDepth,
		printer:   message.NewPrinter(language.English),
		output:    newOutput(io.Discard, termenv.WithProfile(termenv.Ascii)),
	}, nil
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc, err := newController(cfg)
	if err != nil {
		return nil, err
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          sc.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		sc.Close()
		return nil, err
	}
	sc.l = l
	sc.output = newOutput(l.Stdout())
	return sc, nil
}

func (sc *ShellController) prompt() string {
	if sc.curMode == GomokuMode {
		return "\033[31mgobang>\033[0m "
	}
	return "\033[31mgobang-" + sc.curMode.String() + ">\033[0m "
}

func (sc *ShellController) Close() error {
	var errs []error
	if sc.archive != nil {
		errs = append(errs, sc.archive.Close())
	}
	if sc.botClient != nil {
		sc.botClient.Close()
	}
	errs = append(errs, sc.engine.Close())
	return errors.Join(errs...)
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func modeFromStr(mode string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "gomoku", "gobang":
		return GomokuMode, nil
	case "ttt", "tictactoe":
		return TicTacToeMode, nil
	case "uttt", "ultimate":
		return UltimateMode, nil
	}
	return InvalidMode, errors.New("mode " + mode + " is not a valid choice")
}

func (sc *ShellController) modeSelector(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("Current mode: " + sc.curMode.String() + "\n"), nil
	}
	m, err := modeFromStr(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.curMode = m
	if sc.l != nil {
		sc.l.SetPrompt(sc.prompt())
	}
	log.Debug().Str("mode", m.String()).Msg("mode-changed")
	return msg("Setting current mode to " + m.String() + "\n"), nil
}

// Execute runs one command line in the current mode.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "mode":
		return sc.modeSelector(cmd)
	case "set":
		return sc.set(cmd)
	case "script":
		return sc.script(cmd)
	}
	switch sc.curMode {
	case TicTacToeMode:
		return sc.tttModeSwitch(cmd)
	case UltimateMode:
		return sc.utttModeSwitch(cmd)
	}
	return sc.gomokuModeSwitch(cmd)
}

func (sc *ShellController) gomokuModeSwitch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai":
		return sc.aiMove(cmd)
	case "hint":
		return sc.hint(cmd)
	case "undo":
		return sc.undo(cmd)
	case "resign":
		return sc.resign(cmd)
	case "show":
		return sc.show(cmd)
	case "save":
		return sc.save(cmd)
	case "archive":
		return sc.archiveCmd(cmd)
	case "remote":
		return sc.remote(cmd)
	}
	// a bare coordinate is a move
	if _, err := move.Parse(cmd.cmd); err == nil && len(cmd.args) == 0 {
		return sc.play(&shellcmd{cmd: "play", args: []string{cmd.cmd}, options: cmd.options})
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
	return nil, fmt.Errorf("unrecognized command %q; try 'help'", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.Execute(line)
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
