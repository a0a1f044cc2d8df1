// Package postgres embeds SQL migration files for PostgreSQL.
package postgres

import "embed"

//go:embed *.sql
var FS embed.FS
