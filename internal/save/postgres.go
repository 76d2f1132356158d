package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps saves in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and applies the migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	err = migrate(ctx, sqlDB, "postgres")
	sqlDB.Close()
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Exists(ctx context.Context, slot string) (bool, error) {
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM saves WHERE slot = $1)`, slot).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("querying save %q: %w", slot, err)
	}
	return ok, nil
}

func (s *PostgresStore) Load(ctx context.Context, slot string) (Save, bool, error) {
	if err := checkSlot(slot); err != nil {
		return Save{}, false, err
	}
	var (
		sv   Save
		team string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT level, x, y, team FROM saves WHERE slot = $1`, slot,
	).Scan(&sv.Level, &sv.Coords[0], &sv.Coords[1], &team)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PostgresStore) Write(ctx context.Context, slot string, sv Save) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	team, err := encodeTeam(sv.Team)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO saves (slot, level, x, y, team, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
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

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
