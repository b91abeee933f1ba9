// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files, one directory per database driver
// (postgres, mysql, sqlite). Files are applied in lexical order.
//
//go:embed migrations/postgres/*.sql migrations/mysql/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
