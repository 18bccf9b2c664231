package shell

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/turnplayer"
)

const (
	selfColor     = "1" // red
	opponentColor = "4" // blue
)

func newOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return termenv.NewOutput(w, opts...)
}

// gameText draws the board with coloured stones and the last move in
// bold, followed by the game status.
func (sc *ShellController) gameText(g *turnplayer.AIPlayer) string {
	last := g.LastMove()
	o := sc.output
	txt := g.Board().ToStyledText(func(row, col int, c board.Cell) string {
		s := o.String(c.String())
		switch c {
		case board.Self:
			s = s.Foreground(o.Color(selfColor))
		case board.Opponent:
			s = s.Foreground(o.Color(opponentColor))
		}
		if !last.IsNone() && last.Row == row && last.Col == col {
			s = s.Bold()
		}
		return s.String()
	})
	return txt + "\n" + g.ResultString() + "\n"
}
