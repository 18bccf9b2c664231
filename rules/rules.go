// Package rules decides when a gomoku game is over.
package rules

import (
	"github.com/domino14/gobang/board"
)

// WinLength is the number of contiguous stones needed to win.
const WinLength = 5

// Directions are the four line orientations: down, right, down-right,
// down-left.
var Directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// HasFiveInARow returns true if player has WinLength contiguous stones in
// any direction. It is called at every node of the search and does not
// allocate.
func HasFiveInARow(b *board.Board, player board.Cell) bool {
	if player == board.Empty {
		return false
	}
	n := b.Dim()
	cells := b.Cells()
	for d := 0; d < len(Directions); d++ {
		dr, dc := Directions[d][0], Directions[d][1]
		step := dr*n + dc
		for r := 0; r < n; r++ {
			er := r + dr*(WinLength-1)
			if er < 0 || er >= n {
				continue
			}
			for c := 0; c < n; c++ {
				ec := c + dc*(WinLength-1)
				if ec < 0 || ec >= n {
					continue
				}
				idx := r*n + c
				k := 0
				for ; k < WinLength; k++ {
					if cells[idx+k*step] != player {
						break
					}
				}
				if k == WinLength {
					return true
				}
			}
		}
	}
	return false
}

// Winner returns the side with five in a row, or board.Empty.
func Winner(b *board.Board) board.Cell {
	if HasFiveInARow(b, board.Self) {
		return board.Self
	}
	if HasFiveInARow(b, board.Opponent) {
		return board.Opponent
	}
	return board.Empty
}

// IsDraw is true when the board is full and nobody has won.
func IsDraw(b *board.Board) bool {
	return b.Full() && Winner(b) == board.Empty
}

// Terminal is true if either side has won.
func Terminal(b *board.Board) bool {
	return HasFiveInARow(b, board.Self) || HasFiveInARow(b, board.Opponent)
}
