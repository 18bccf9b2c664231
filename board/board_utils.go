package board

import (
	"fmt"
	"strings"
)

// ToDisplayText draws the board with lettered columns and numbered rows,
// the way coordinates are typed into the shell.
func (b *Board) ToDisplayText() string {
	return b.ToStyledText(nil)
}

// ToStyledText is ToDisplayText with each cell drawn by style. A nil style
// draws the plain cell symbol.
func (b *Board) ToStyledText(style func(row, col int, c Cell) string) string {
	if style == nil {
		style = func(_, _ int, c Cell) string { return c.String() }
	}
	var str strings.Builder
	n := b.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str.WriteString(row + "\n")
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	for i := 0; i < n; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < n; j++ {
			row = row + style(i, j, b.At(i, j)) + " "
		}
		row = row + "|"
		str.WriteString(row + "\n")
	}
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + str.String()
}

// Rows is the inverse of FromRows.
func (b *Board) Rows() []string {
	rows := make([]string, b.dim)
	for r := 0; r < b.dim; r++ {
		var sb strings.Builder
		for c := 0; c < b.dim; c++ {
			sb.WriteString(b.At(r, c).String())
		}
		rows[r] = sb.String()
	}
	return rows
}
