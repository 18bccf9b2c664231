package shell

import (
	"errors"
	"net/http"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/gobang/game"
)

const scriptHTTPTimeout = 10 * time.Second

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("gobang_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Exec runs one shell command and returns its output, or a string
// starting with ERROR.
func Exec(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	r, err := sc.Execute(line)
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-script-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

// State returns a table describing the current Gomoku game, or nil.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	g := sc.game
	t := L.NewTable()
	t.RawSetString("id", lua.LString(g.Uid()))
	t.RawSetString("size", lua.LNumber(g.Board().Dim()))
	t.RawSetString("turn", lua.LNumber(g.Turn()))
	t.RawSetString("on_turn", lua.LString(game.PlayerName(g.PlayerOnTurn())))
	t.RawSetString("state", lua.LString(g.Playing().String()))
	t.RawSetString("winner", lua.LString(game.PlayerName(g.Winner())))
	moves := L.NewTable()
	for _, m := range g.Moves() {
		moves.Append(lua.LString(m.Coords()))
	}
	t.RawSetString("moves", moves)
	L.Push(t)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: scriptHTTPTimeout}).Loader)
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("gobang_shell", lsc)
	L.SetGlobal("gobang_exec", L.NewFunction(Exec))
	L.SetGlobal("gobang_state", L.NewFunction(State))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("Ran " + filepath + "\n"), nil
}
