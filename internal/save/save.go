// Package save persists player progress: level, position on the map and
// team. The same record can live in a JSON file, SQLite or PostgreSQL.
package save

import (
	"context"
	"errors"
	"fmt"

	"pokeclone/internal/game"
)

// DefaultSlot is used when the player does not name one.
const DefaultSlot = "save"

var ErrInvalidSlot = errors.New("invalid save slot")

// Save is one saved game. Team members point into the Dex by reference;
// the references are checked when the save is restored into a session.
type Save struct {
	Level  int       `json:"level"`
	Coords [2]int    `json:"coords"`
	Team   game.Team `json:"team"`
}

func FromProgress(p game.Progress) Save {
	return Save{Level: p.Level, Coords: p.Coords, Team: p.Team}
}

func (s Save) Progress() game.Progress {
	return game.Progress{Level: s.Level, Coords: s.Coords, Team: s.Team}
}

// Store reads and writes saves by slot name.
type Store interface {
	Exists(ctx context.Context, slot string) (bool, error)
	// Load returns false when the slot holds no save.
	Load(ctx context.Context, slot string) (Save, bool, error)
	Write(ctx context.Context, slot string, s Save) error
	Close() error
}

// Open builds the store for driver: "file" (target is a directory),
// "sqlite" (target is a database file) or "postgres" (target is a DSN).
func Open(ctx context.Context, driver, target string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch driver {
	case "", "file":
		st, err = NewFileStore(target)
	case "sqlite":
		st, err = OpenSQLite(ctx, target)
	case "postgres":
		st, err = OpenPostgres(ctx, target)
	default:
		return nil, fmt.Errorf("unknown save driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// checkSlot accepts 1 to 64 characters among [a-zA-Z0-9_-] so a slot is
// always a safe file name.
func checkSlot(slot string) error {
	if slot == "" || len(slot) > 64 {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	for _, r := range slot {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
		}
	}
	return nil
}
