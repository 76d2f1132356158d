package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchemas(t *testing.T) {
	dir := t.TempDir()
	for name, schema := range buildSchemas() {
		require.NoError(t, writeSchema(filepath.Join(dir, name), schema))
	}

	for _, name := range []string{"species.schema.json", "attacks.schema.json"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(b, &doc), name)
		assert.Contains(t, string(b), "Dex", name)
	}
	_, err := os.Stat(filepath.Join(dir, "species.schema.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}
