// Package migrations embeds the goose SQL migrations shared by the SQLite
// and PostgreSQL character stores.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
