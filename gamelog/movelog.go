// Package gamelog records finished and in-progress games: a plain-text
// move log that can be saved to disk, and a sqlite archive.
package gamelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/move"
)

const (
	logHeader     = "Gomoku Game Log\n===============\n\n"
	logFilePrefix = "gomoku_log_"
	logFileStamp  = "20060102_150405"
	logEntryStamp = "15:04:05"
)

// MoveLog is the list of timestamped lines shown next to the board.
type MoveLog struct {
	entries []string
	now     func() time.Time
}

func NewMoveLog() *MoveLog {
	return &MoveLog{now: time.Now}
}

func (l *MoveLog) LogMove(player string, m move.Move) {
	l.entries = append(l.entries, fmt.Sprintf("%s - %s: Move to %s",
		l.now().Format(logEntryStamp), player, m.String()))
}

func (l *MoveLog) LogResign(loser, winner string) {
	l.entries = append(l.entries, fmt.Sprintf("%s - %s resigned. %s wins!",
		l.now().Format(logEntryStamp), loser, winner))
}

// Pop drops the last entry, for undo.
func (l *MoveLog) Pop() {
	if len(l.entries) > 0 {
		l.entries = l.entries[:len(l.entries)-1]
	}
}

func (l *MoveLog) Reset() {
	l.entries = l.entries[:0]
}

func (l *MoveLog) Entries() []string {
	return append([]string(nil), l.entries...)
}

func (l *MoveLog) Len() int {
	return len(l.entries)
}

// WriteTo writes the header and every entry, one per line.
func (l *MoveLog) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	n, err := bw.WriteString(logHeader)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, e := range l.entries {
		n, err = bw.WriteString(e + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// Save writes the log to a timestamped file in dir and returns its path.
func (l *MoveLog) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, logFilePrefix+l.now().Format(logFileStamp)+".txt")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := l.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Int("entries", len(l.entries)).Msg("saved-move-log")
	return path, nil
}
