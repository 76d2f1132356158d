package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps saves in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the
// migrations. ":memory:" gives a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "saves.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One connection: SQLite has a single writer, and every connection to
	// ":memory:" would be a different database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}
	if err := migrate(ctx, db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, slot string) (bool, error) {
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM saves WHERE slot = ?`, slot).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying save %q: %w", slot, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) (Save, bool, error) {
	if err := checkSlot(slot); err != nil {
		return Save{}, false, err
	}
	var (
		sv   Save
		team string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT level, x, y, team FROM saves WHERE slot = ?`, slot,
	).Scan(&sv.Level, &sv.Coords[0], &sv.Coords[1], &team)
	if errors.Is(err, sql.ErrNoRows) {
		return Save{}, false, nil
	}
	if err != nil {
		return Save{}, false, fmt.Errorf("querying save %q: %w", slot, err)
	}
	if sv.Team, err = decodeTeam(team); err != nil {
		return Save{}, false, fmt.Errorf("save %q: %w", slot, err)
	}
	return sv, true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, slot string, sv Save) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	team, err := encodeTeam(sv.Team)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, level, x, y, team, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (slot) DO UPDATE SET
		   level = excluded.level, x = excluded.x, y = excluded.y,
		   team = excluded.team, updated_at = excluded.updated_at`,
		slot, sv.Level, sv.Coords[0], sv.Coords[1], team,
	)
	if err != nil {
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
