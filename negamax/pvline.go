package negamax

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/gobang/move"
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []move.Move
	score int
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = pvLine.Moves[:0]
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m move.Move, newPVLine PVLine, score int) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

// Get the best move from the principal variation line.
func (pvLine *PVLine) GetPVMove() move.Move {
	if len(pvLine.Moves) == 0 {
		return move.None
	}
	return pvLine.Moves[0]
}

func (pvLine *PVLine) Score() int {
	return pvLine.score
}

// Copy returns a PV line that does not share storage with this one.
func (pvLine *PVLine) Copy() PVLine {
	moves := make([]move.Move, len(pvLine.Moves))
	copy(moves, pvLine.Moves)
	return PVLine{Moves: moves, score: pvLine.score}
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "PV; val %d\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&s, "%d: %s %s\n", i+1, m.Coords(), m.String())
	}
	return s.String()
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	return fmt.Sprintf("PV; val %d; %s", pvLine.score,
		strings.Join(lo.Map(pvLine.Moves, func(m move.Move, _ int) string {
			return m.Coords()
		}), " "))
}
