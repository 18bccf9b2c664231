package gamelog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint TEXT NOT NULL UNIQUE,
	board_size INTEGER NOT NULL,
	first_player TEXT NOT NULL,
	winner TEXT NOT NULL,
	result TEXT NOT NULL,
	move_count INTEGER NOT NULL,
	moves TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// Record is one archived game.
type Record struct {
	ID          int64
	Fingerprint string
	BoardSize   int
	FirstPlayer string
	Winner      string
	Result      string
	MoveCount   int
	Moves       []string
	CreatedAt   time.Time
}

// Archive stores finished games in a sqlite file.
type Archive struct {
	db       *sql.DB
	attempts uint
}

func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating games table: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-archive")
	return &Archive{db: db, attempts: 5}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Fingerprint identifies a game by its size and move sequence.
func Fingerprint(dim int, moves []move.Move) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:", dim)
	for _, m := range moves {
		sb.WriteString(m.Coords())
		sb.WriteByte(' ')
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(sb.String()))
}

// SaveGame archives g. It returns false if the same game is already there.
func (a *Archive) SaveGame(ctx context.Context, g *game.Game) (bool, error) {
	moves := g.Moves()
	coords := make([]string, len(moves))
	for i, m := range moves {
		coords[i] = m.Coords()
	}
	fp := Fingerprint(g.Board().Dim(), moves)
	var inserted bool
	err := retry.Do(
		func() error {
			res, err := a.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO games
				(fingerprint, board_size, first_player, winner, result, move_count, moves, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				fp, g.Board().Dim(), game.PlayerName(g.FirstPlayer()), game.PlayerName(g.Winner()),
				g.Playing().String(), len(moves), strings.Join(coords, " "), time.Now().Unix())
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted = n > 0
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(a.attempts),
		retry.Delay(20*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("archive-insert-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return false, fmt.Errorf("archiving game: %w", err)
	}
	log.Info().Str("fingerprint", fp).Bool("inserted", inserted).Int("moves", len(moves)).Msg("archived-game")
	return inserted, nil
}

// Recent returns up to limit games, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, fingerprint, board_size, first_player, winner, result, move_count, moves, created_at
		FROM games ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []Record
	for rows.Next() {
		var r Record
		var moves string
		var created int64
		if err := rows.Scan(&r.ID, &r.Fingerprint, &r.BoardSize, &r.FirstPlayer, &r.Winner,
			&r.Result, &r.MoveCount, &moves, &created); err != nil {
			return nil, err
		}
		r.Moves = strings.Fields(moves)
		r.CreatedAt = time.Unix(created, 0)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}
