package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a stone placement at (Row, Col). Rows and columns are zero-based.
type Move struct {
	Row int
	Col int
}

// None is returned when no move is available (a full board).
var None = Move{Row: -1, Col: -1}

var ErrMalformedMove = errors.New("malformed move")

var reCoords, rePair *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[A-Za-z])(?P<row>[0-9]+)$`)
	rePair = regexp.MustCompile(`^\(?\s*(?P<row>[0-9]+)\s*[, ]\s*(?P<col>[0-9]+)\s*\)?$`)
}

func New(row, col int) Move {
	return Move{Row: row, Col: col}
}

// IsNone returns true for the "no move" sentinel.
func (m Move) IsNone() bool {
	return m == None
}

// String returns the move as a zero-based (row, col) pair. This is the form
// written to move logs.
func (m Move) String() string {
	if m.IsNone() {
		return "(none)"
	}
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Coords returns the coordinates as shown on the board display: a lettered
// column and a one-based row, e.g. H8 for (7, 7).
func (m Move) Coords() string {
	if m.IsNone() || m.Col < 0 || m.Col >= 26 {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'A'+m.Col, m.Row+1)
}

// Parse accepts either display coordinates (H8, h8) or a zero-based pair
// ("7,7", "7 7", "(7, 7)").
func Parse(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if matches := reCoords.FindStringSubmatch(s); matches != nil {
		col := int(strings.ToUpper(matches[1])[0] - 'A')
		row, err := strconv.Atoi(matches[2])
		if err != nil {
			return None, fmt.Errorf("%w: %v", ErrMalformedMove, err)
		}
		if row < 1 {
			return None, fmt.Errorf("%w: rows start at 1 in %q", ErrMalformedMove, s)
		}
		return Move{Row: row - 1, Col: col}, nil
	}
	if matches := rePair.FindStringSubmatch(s); matches != nil {
		row, err := strconv.Atoi(matches[1])
		if err != nil {
			return None, fmt.Errorf("%w: %v", ErrMalformedMove, err)
		}
		col, err := strconv.Atoi(matches[2])
		if err != nil {
			return None, fmt.Errorf("%w: %v", ErrMalformedMove, err)
		}
		return Move{Row: row, Col: col}, nil
	}
	return None, fmt.Errorf("%w: %q", ErrMalformedMove, s)
}
