// Package mysql embeds SQL migration files for MySQL/MariaDB.
package mysql

import "embed"

//go:embed *.sql
var FS embed.FS
