// Package migrations embeds the goose migrations of the local device store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
