// Package migrations embeds the SQL schema scripts.
package migrations

import "embed"

// InitSchema is the file name of the initial schema script
const InitSchema = "000001_init_schema.up.sql"

//go:embed *.sql
var FS embed.FS
