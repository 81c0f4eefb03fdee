// Package migrations embeds the SQL schema migrations, one directory per
// database dialect.
package migrations

import "embed"

// FS holds sqlite/*.sql and postgres/*.sql
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
