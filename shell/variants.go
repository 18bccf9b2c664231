package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/gobang/tictactoe"
	"github.com/domino14/gobang/uttt"
)

func variantFirst(cmd *shellcmd) (tictactoe.Player, error) {
	switch strings.ToLower(cmd.options.String("first")) {
	case "", "human", "me":
		return tictactoe.Human, nil
	case "ai", "engine":
		return tictactoe.AI, nil
	}
	return tictactoe.None, errors.New("first player must be ai or human")
}

func variantResult(w tictactoe.Player, terminal bool) string {
	switch {
	case w == tictactoe.Human:
		return "Human wins\n"
	case w == tictactoe.AI:
		return "AI wins\n"
	case terminal:
		return "Draw\n"
	}
	return ""
}

func (sc *ShellController) tttModeSwitch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		first, err := variantFirst(cmd)
		if err != nil {
			return nil, err
		}
		sc.ttt = tictactoe.NewPosition(first)
		var sb strings.Builder
		if first == tictactoe.AI {
			if err := sc.tttReply(&sb); err != nil {
				return nil, err
			}
		}
		sb.WriteString(sc.ttt.String())
		return msg(sb.String()), nil
	case "show":
		if sc.ttt == nil {
			return nil, errNoGame
		}
		return msg(sc.ttt.String() + variantResult(sc.ttt.Winner(), sc.ttt.Terminal())), nil
	case "play", "p":
		if len(cmd.args) != 1 {
			return nil, errors.New("usage: play <cell 1-9>")
		}
		return sc.tttPlay(cmd.args[0])
	}
	if _, err := strconv.Atoi(cmd.cmd); err == nil && len(cmd.args) == 0 {
		return sc.tttPlay(cmd.cmd)
	}
	return nil, fmt.Errorf("unrecognized command %q in ttt mode; try 'help'", cmd.cmd)
}

func (sc *ShellController) tttPlay(arg string) (*Response, error) {
	if sc.ttt == nil {
		return nil, errNoGame
	}
	cell, err := strconv.Atoi(arg)
	if err != nil {
		return nil, err
	}
	if err := sc.ttt.MakeMove(cell - 1); err != nil {
		return nil, err
	}
	var sb strings.Builder
	if !sc.ttt.Terminal() {
		if err := sc.tttReply(&sb); err != nil {
			return nil, err
		}
	}
	sb.WriteString(sc.ttt.String())
	sb.WriteString(variantResult(sc.ttt.Winner(), sc.ttt.Terminal()))
	return msg(sb.String()), nil
}

func (sc *ShellController) tttReply(sb *strings.Builder) error {
	m, err := sc.ttt.BestMove()
	if err != nil {
		return err
	}
	if err := sc.ttt.MakeMove(m); err != nil {
		return err
	}
	fmt.Fprintf(sb, "AI plays %d\n", m+1)
	return nil
}

func (sc *ShellController) utttModeSwitch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		first, err := variantFirst(cmd)
		if err != nil {
			return nil, err
		}
		depth, err := cmd.options.IntDefault("depth", sc.utttDepth)
		if err != nil {
			return nil, err
		}
		if depth < 1 {
			return nil, errors.New("depth must be at least 1")
		}
		sc.utttDepth = depth
		sc.uttt = uttt.NewPosition(first)
		var sb strings.Builder
		if first == tictactoe.AI {
			if err := sc.utttReply(&sb); err != nil {
				return nil, err
			}
		}
		sb.WriteString(sc.utttStatus())
		return msg(sb.String()), nil
	case "show":
		if sc.uttt == nil {
			return nil, errNoGame
		}
		return msg(sc.utttStatus()), nil
	case "play", "p":
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: play <row 1-9> <col 1-9>")
		}
		return sc.utttPlay(cmd.args[0], cmd.args[1])
	}
	return nil, fmt.Errorf("unrecognized command %q in uttt mode; try 'help'", cmd.cmd)
}

func (sc *ShellController) utttPlay(rowArg, colArg string) (*Response, error) {
	if sc.uttt == nil {
		return nil, errNoGame
	}
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return nil, err
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return nil, err
	}
	if row < 1 || row > 9 || col < 1 || col > 9 {
		return nil, fmt.Errorf("%w: row and column must be 1-9", uttt.ErrIllegalMove)
	}
	sub, cell := uttt.MoveFromGrid(row-1, col-1)
	if err := sc.uttt.MakeMove(sub, cell); err != nil {
		return nil, err
	}
	var sb strings.Builder
	if !sc.uttt.Terminal() {
		if err := sc.utttReply(&sb); err != nil {
			return nil, err
		}
	}
	sb.WriteString(sc.utttStatus())
	return msg(sb.String()), nil
}

func (sc *ShellController) utttReply(sb *strings.Builder) error {
	sub, cell, err := sc.uttt.BestMove(sc.utttDepth)
	if err != nil {
		return err
	}
	if err := sc.uttt.MakeMove(sub, cell); err != nil {
		return err
	}
	fmt.Fprintf(sb, "AI plays board %d cell %d\n", sub+1, cell+1)
	return nil
}

func (sc *ShellController) utttStatus() string {
	p := sc.uttt
	s := p.String()
	if res := variantResult(p.Winner(), p.Terminal()); res != "" {
		return s + res
	}
	if n := p.NextBoard(); n != uttt.AnyBoard {
		return s + fmt.Sprintf("%s to move in board %d\n", p.Turn(), n+1)
	}
	return s + fmt.Sprintf("%s to move in any open board\n", p.Turn())
}
