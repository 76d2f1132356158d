package save

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokeclone/internal/dex"
	"pokeclone/internal/game"
)

func sample() Save {
	surname := "Sparky"
	return Save{
		Level:  2,
		Coords: [2]int{12, -3},
		Team: game.Team{
			{Surname: &surname, CreatureID: dex.CreatureRef{SpeciesID: 0, IndividualID: 1}, HP: 17},
			{CreatureID: dex.CreatureRef{SpeciesID: 3, IndividualID: 0}, HP: 0},
		},
	}
}

// testStore runs the behaviour every Store shares.
func testStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	ok, err := st.Exists(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.False(t, ok)

	want := sample()
	require.NoError(t, st.Write(ctx, DefaultSlot, want))

	ok, err = st.Exists(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok, err := st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	want.Level = 3
	want.Team = want.Team[:1]
	require.NoError(t, st.Write(ctx, DefaultSlot, want), "overwrite")
	got, _, err = st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, st.Write(ctx, "empty", Save{}))
	got, ok, err = st.Load(ctx, "empty")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.Team)

	for _, slot := range []string{"", "../escape", "a b", strings.Repeat("x", 65)} {
		_, err := st.Exists(ctx, slot)
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %q", slot)
		assert.ErrorIs(t, st.Write(ctx, slot, want), ErrInvalidSlot, "slot %q", slot)
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer st.Close()
	testStore(t, st)
}

func TestFileStoreFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, st.Write(context.Background(), "slot1", sample()))

	b, err := os.ReadFile(filepath.Join(dir, "slot1.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "{\n    \"level\": 2,"), "four space indentation, got:\n%s", b)
	assert.Contains(t, string(b), `"creature_id": [`)
	assert.Contains(t, string(b), `"surname": "Sparky"`)
	assert.Contains(t, string(b), `"surname": null`, "an unnamed member keeps the key")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file left behind")
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))
	st, err := NewFileStore(dir)
	require.NoError(t, err)

	_, _, err = st.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer st.Close()
	testStore(t, st)
}

func TestSQLiteStoreReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")

	st, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.Write(ctx, DefaultSlot, sample()))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations are idempotent")
	defer st.Close()
	got, ok, err := st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample(), got)
}

// The PostgreSQL store needs a server: set POKECLONE_TEST_POSTGRES_DSN to
// run it.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POKECLONE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POKECLONE_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	st, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.pool.Exec(ctx, `DELETE FROM saves WHERE slot IN ('save', 'empty')`)
	require.NoError(t, err)
	testStore(t, st)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st, err := Open(ctx, "file", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	st, err = Open(ctx, "sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, "mongo", "")
	assert.Error(t, err)
}

func TestProgressRoundTrip(t *testing.T) {
	t.Parallel()
	sv := sample()
	assert.Equal(t, sv, FromProgress(sv.Progress()))
}
