// Package migrations holds the goose migrations of the save database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
