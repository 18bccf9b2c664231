// Package pattern scores gomoku shapes. A Table holds the shapes seen from
// the side to evaluate for; every shape is mirrored with the stones swapped
// and the score negated, so the evaluation is symmetric by construction.
package pattern

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/domino14/gobang/board"
)

// WindowSize is the width of a scoring window: a centre cell plus four
// neighbours on each side.
const WindowSize = 9

// Blocked fills window positions that fall off the board. It matches a 2 in
// a shape (and the mirrored element), never an empty cell or an own stone.
const Blocked board.Cell = 3

var (
	ErrEmptyTable = errors.New("pattern table has no patterns")
	ErrBadShape   = errors.New("bad pattern shape")
	ErrScoreRange = errors.New("pattern scores too large")
)

// A Window is a line of cells centred on a point. Index 0 is the furthest
// cell in the negative direction.
type Window [WindowSize]board.Cell

// Entry is a pattern as written in a pattern file: a shape over
// 0 (empty), 1 (own stone) and 2 (opposing stone or the board edge) with
// its score.
type Entry struct {
	Shape string `yaml:"shape"`
	Score int    `yaml:"score"`
}

// Pattern is a compiled entry. Edge marks the elements that the board edge
// also satisfies.
type Pattern struct {
	Shape []board.Cell
	Edge  []bool
	Score int
}

// Table is an immutable set of patterns. Build it with NewTable.
type Table struct {
	entries  []Entry
	patterns []Pattern

	lookupOnce sync.Once
	codes      []int32
}

// DefaultEntries are the canonical gomoku shape values.
var DefaultEntries = []Entry{
	{"11111", 50000},
	{"011110", 25000},
	{"11110", 4320},
	{"01111", 4320},
	{"01110", 720},
	{"0110", 120},
	{"010", 20},
}

var defaultTable *Table

func init() {
	var err error
	defaultTable, err = NewTable(DefaultEntries)
	if err != nil {
		panic(err)
	}
}

// DefaultTable returns the shared table built from DefaultEntries.
func DefaultTable() *Table {
	return defaultTable
}

func parseShape(shape string) ([]board.Cell, []bool, error) {
	if len(shape) == 0 || len(shape) > WindowSize {
		return nil, nil, fmt.Errorf("%w: %q must have 1 to %d cells", ErrBadShape, shape, WindowSize)
	}
	cells := make([]board.Cell, len(shape))
	edge := make([]bool, len(shape))
	own := false
	for i, ch := range shape {
		switch ch {
		case '0':
			cells[i] = board.Empty
		case '1':
			cells[i] = board.Self
			own = true
		case '2':
			cells[i] = board.Opponent
			edge[i] = true
		default:
			return nil, nil, fmt.Errorf("%w: %q has symbol %q", ErrBadShape, shape, ch)
		}
	}
	if !own {
		return nil, nil, fmt.Errorf("%w: %q has no own stones", ErrBadShape, shape)
	}
	return cells, edge, nil
}

func mirror(cells []board.Cell) []board.Cell {
	m := make([]board.Cell, len(cells))
	for i, c := range cells {
		m[i] = c.Other()
	}
	return m
}

// NewTable compiles the entries and adds the mirrored opponent patterns.
// The largest possible window sum must fit in an int32.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	// Bound on |window sum|: every placement of every shape matching with the
	// same sign.
	bound := 0.0
	for _, e := range entries {
		if e.Score == 0 {
			return nil, fmt.Errorf("%w: %q has a zero score", ErrBadShape, e.Shape)
		}
		cells, edge, err := parseShape(e.Shape)
		if err != nil {
			return nil, err
		}
		bound += math.Abs(float64(e.Score)) * float64(WindowSize-len(cells)+1)
		t.patterns = append(t.patterns,
			Pattern{Shape: cells, Edge: edge, Score: e.Score},
			Pattern{Shape: mirror(cells), Edge: edge, Score: -e.Score})
	}
	if bound > math.MaxInt32 {
		return nil, fmt.Errorf("%w: a window could score %.0f", ErrScoreRange, bound)
	}
	return t, nil
}

// Entries returns the own-side entries the table was built from.
func (t *Table) Entries() []Entry {
	es := make([]Entry, len(t.entries))
	copy(es, t.entries)
	return es
}

// Patterns returns every compiled pattern, mirrored ones included.
func (t *Table) Patterns() []Pattern {
	ps := make([]Pattern, len(t.patterns))
	copy(ps, t.patterns)
	return ps
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, e := range t.entries {
		fmt.Fprintf(&sb, "%-9s %d\n", e.Shape, e.Score)
	}
	return sb.String()
}

// ScoreWindow slides every pattern over the window and adds up the score of
// every match. Matches may overlap.
func ScoreWindow(w Window, t *Table) int {
	score := 0
	for _, p := range t.patterns {
		n := len(p.Shape)
		for i := 0; i+n <= WindowSize; i++ {
			j := 0
			for ; j < n; j++ {
				c := w[i+j]
				if c != p.Shape[j] && !(c == Blocked && p.Edge[j]) {
					break
				}
			}
			if j == n {
				score += p.Score
			}
		}
	}
	return score
}

const (
	numCodes = 1 << (2 * WindowSize)
	codeMask = numCodes - 1
)

// encode packs a window into 2 bits per cell, index 0 most significant.
func encode(w Window) uint32 {
	code := uint32(0)
	for _, c := range w {
		code = code<<2 | uint32(c)
	}
	return code
}

func decode(code uint32) Window {
	var w Window
	for i := WindowSize - 1; i >= 0; i-- {
		w[i] = board.Cell(code & 3)
		code >>= 2
	}
	return w
}

// lookup returns the score of every possible window, indexed by its code.
// It is built the first time it is needed.
func (t *Table) lookup() []int32 {
	t.lookupOnce.Do(func() {
		t.codes = make([]int32, numCodes)
		for code := uint32(0); code < numCodes; code++ {
			t.codes[code] = int32(ScoreWindow(decode(code), t))
		}
	})
	return t.codes
}
