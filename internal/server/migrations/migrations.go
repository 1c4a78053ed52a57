// Package migrations embeds the goose migrations of the HR API database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
