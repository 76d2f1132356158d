package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"pokeclone/internal/game"
	"pokeclone/internal/save/migrations"
)

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

func migrate(ctx context.Context, db *sql.DB, dialect string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func encodeTeam(t game.Team) (string, error) {
	if t == nil {
		t = game.Team{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding team: %w", err)
	}
	return string(b), nil
}

func decodeTeam(s string) (game.Team, error) {
	var t game.Team
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return nil, fmt.Errorf("decoding team: %w", err)
	}
	return t, nil
}
