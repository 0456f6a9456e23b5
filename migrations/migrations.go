// Package migrations embeds the SQL schema for every relational store.
package migrations

import "embed"

// Postgres holds the PostgreSQL migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// Sqlite holds the SQLite migrations under sqlite/.
//
//go:embed sqlite/*.sql
var Sqlite embed.FS
