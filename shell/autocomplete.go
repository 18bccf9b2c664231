package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":     {Options: []string{"-first", "-depth"}},
	"ai":      {Options: []string{"-depth"}},
	"remote":  {Options: []string{"-depth"}},
	"archive": {Args: []string{"list"}, Options: []string{"-n"}},
	"set":     {Args: settableKeys},
	"mode":    {Args: []string{"gomoku", "ttt", "uttt"}},
	"help":    {Args: []string{"play", "ai", "set", "archive", "script", "ttt", "uttt"}},
}

var commandNames = map[Mode][]string{
	GomokuMode: {"new", "play", "ai", "hint", "undo", "resign", "show", "save",
		"archive", "remote", "script", "set", "mode", "help", "exit"},
	TicTacToeMode: {"new", "play", "show", "script", "set", "mode", "help", "exit"},
	UltimateMode:  {"new", "play", "show", "script", "set", "mode", "help", "exit"},
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames[c.sc.curMode]
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-first":
			completions = []string{"ai", "human"}
		case cmdName == "set" && len(fields) >= 2 && lastCompleteField != "set":
			switch lastCompleteField {
			case "deepening-policy":
				completions = []string{"deepest", "accumulate"}
			case "quick-win-exit", "engine-first", "autoreply":
				completions = boolValues
			default:
				completions = []string{}
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
