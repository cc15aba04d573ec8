// Package migrations embeds the goose SQL migrations so the server binary
// can bring its own schema up without external files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
